// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	GameNotFoundId
	VersionNotDetectedId
	BuildsDocumentInvalidId
	CacheWriteFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id    Id
	mdMsg MarkdownMsg
	links []HttpLink // listed under "See also"
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render returns the issue as terminal-formatted Markdown using the glamour
// style at stylePath ("dark", "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))

	if len(i.links) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.links {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your ksatool configuration file could not be read or does not match the schema.

## Things you can try:
- Show where ksatool looks for its configuration:
~~~
$ ksatool config path
~~~

- Recreate a default configuration file:
~~~
$ ksatool config init --force
~~~

## Valid configuration example:
~~~cue
install_dir: "/games/Kitten Space Agency"
log_level:   "info"
ui: {
	color_scheme: "auto"
	verbose:      false
}
~~~`,
	}

	gameNotFoundIssue = &Issue{
		id: GameNotFoundId,
		mdMsg: `
# No Kitten Space Agency installation found!

The directory does not contain **KSA.exe**, so it does not look like a game
installation.

## Things you can try:
- Pass the installation directory explicitly:
~~~
$ ksatool detect "/path/to/Kitten Space Agency"
~~~

- Or store it in your configuration:
~~~cue
install_dir: "/path/to/Kitten Space Agency"
~~~`,
		links: []HttpLink{"https://forums.ahwoo.com/forums/guides-and-help.19"},
	}

	versionNotDetectedIssue = &Issue{
		id: VersionNotDetectedId,
		mdMsg: `
# Could not detect the game build!

The game records its build in a JSON descriptor inside
**content/Versions**. None was found, or the newest one has no readable
**build** field.

## Things you can try:
- Check that the directory is the game root (it contains **content/**)
- Start the game once so it writes its version descriptor
- Inspect the descriptor ksatool picked:
~~~
$ ksatool detect --verbose
~~~`,
	}

	buildsDocumentInvalidIssue = &Issue{
		id: BuildsDocumentInvalidId,
		mdMsg: `
# No valid builds in document!

A builds document must be a JSON object with a **builds** map whose values
are version strings. Entries that are not valid versions are skipped.

## Example:
~~~json
{
  "builds": {
    "2025.11.14": "2025.11.14.2641"
  }
}
~~~`,
	}

	cacheWriteFailedIssue = &Issue{
		id: CacheWriteFailedId,
		mdMsg: `
# Failed to write the builds cache!

ksatool could not store the imported builds in its data directory.

## Things you can try:
- Show the cache location:
~~~
$ ksatool versions path
~~~

- Make sure the directory exists and is writable
- Point **data_dir** in your configuration at a writable directory`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to perform this operation.

## Things you can try:
- Check file and directory permissions
- Run ksatool as the user that owns the game installation`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		gameNotFoundIssue.Id():          gameNotFoundIssue,
		versionNotDetectedIssue.Id():    versionNotDetectedIssue,
		buildsDocumentInvalidIssue.Id(): buildsDocumentInvalidIssue,
		cacheWriteFailedIssue.Id():      cacheWriteFailedIssue,
		permissionDeniedIssue.Id():      permissionDeniedIssue,
	}
)

// Values returns every issue ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int {
		return int(a.id) - int(b.id)
	})
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
