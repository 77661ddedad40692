// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/kittenmods/ksatool/pkg/gameversion"
)

// BuildsField is the top-level key of a builds document.
const BuildsField = "builds"

// utf8BOM is dropped from the start of documents before decoding.
var utf8BOM = []byte("\xef\xbb\xbf")

// ParseBuildsDocument converts a builds document into versions in document
// order. Labels are discarded and entries that fail to parse are dropped.
// A document of the wrong shape yields an empty, non-nil slice.
func ParseBuildsDocument(doc json.RawMessage) []gameversion.Version {
	versions, ok := decodeBuildsDocument(doc)
	if !ok {
		return []gameversion.Version{}
	}
	return versions
}

// ParseBuildsJSON is ParseBuildsDocument for callers holding raw file bytes.
func ParseBuildsJSON(data []byte) []gameversion.Version {
	return ParseBuildsDocument(json.RawMessage(data))
}

// ParseVersionList parses catalog content. It accepts the cache shape (a JSON
// array of version strings) and the builds document shape. The boolean is
// false when the content matches neither; unparseable entries inside an
// otherwise well-formed list are dropped.
func ParseVersionList(data []byte) ([]gameversion.Version, bool) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil, false
	}

	switch trimmed[0] {
	case '[':
		var entries []json.RawMessage
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, false
		}
		versions := make([]gameversion.Version, 0, len(entries))
		for _, entry := range entries {
			var v gameversion.Version
			if err := json.Unmarshal(entry, &v); err != nil {
				continue
			}
			versions = append(versions, v)
		}
		return versions, true
	case '{':
		return decodeBuildsDocument(trimmed)
	default:
		return nil, false
	}
}

// decodeBuildsDocument walks the document with a token decoder so that the
// order of the builds object is kept; encoding into a Go map would lose it.
// Like encoding/json, the builds key matches case-insensitively and the last
// occurrence wins.
func decodeBuildsDocument(doc []byte) ([]gameversion.Version, bool) {
	doc = bytes.TrimPrefix(doc, utf8BOM)
	if !json.Valid(doc) {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(doc))
	if !expectDelim(dec, '{') {
		return nil, false
	}

	var (
		versions []gameversion.Version
		found    bool
	)
	for dec.More() {
		key, ok := readKey(dec)
		if !ok {
			return nil, false
		}

		if !strings.EqualFold(key, BuildsField) {
			if !skipValue(dec) {
				return nil, false
			}
			continue
		}

		builds, ok := decodeBuildsObject(dec)
		if !ok {
			return nil, false
		}
		versions, found = builds, true
	}

	if !found {
		return nil, false
	}
	return versions, true
}

// decodeBuildsObject reads the label -> version object at the decoder's
// position. A null builds value is treated as an empty object.
func decodeBuildsObject(dec *json.Decoder) ([]gameversion.Version, bool) {
	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if tok == nil {
		return []gameversion.Version{}, true
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false
	}

	versions := []gameversion.Version{}
	for dec.More() {
		if _, ok := readKey(dec); !ok {
			return nil, false
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, false
		}

		var v gameversion.Version
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		versions = append(versions, v)
	}

	if !expectDelim(dec, '}') {
		return nil, false
	}
	return versions, true
}

func readKey(dec *json.Decoder) (string, bool) {
	tok, err := dec.Token()
	if err != nil {
		return "", false
	}
	key, ok := tok.(string)
	return key, ok
}

func skipValue(dec *json.Decoder) bool {
	var discard json.RawMessage
	return dec.Decode(&discard) == nil
}

func expectDelim(dec *json.Decoder, want json.Delim) bool {
	tok, err := dec.Token()
	if err != nil {
		return false
	}
	delim, ok := tok.(json.Delim)
	return ok && delim == want
}

// EncodeBuildsDocument renders versions as a builds document, labelling each
// entry with its own version string. Duplicate versions collapse to one entry.
func EncodeBuildsDocument(w io.Writer, versions []gameversion.Version) error {
	builds := make(map[string]string, len(versions))
	for _, v := range versions {
		builds[v.String()] = v.String()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]map[string]string{BuildsField: builds})
}
