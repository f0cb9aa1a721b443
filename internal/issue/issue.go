// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	// ConfigLoadFailedId covers unreadable or invalid configuration files.
	ConfigLoadFailedId Id = iota + 1
	// InterpreterNotFoundId covers hosts with no usable Python.
	InterpreterNotFoundId
	// SpawnFailedId covers interpreters that exist but cannot be started.
	SpawnFailedId
	// PayloadUnavailableId covers a missing or unreadable script.
	PayloadUnavailableId
	// PipeFailedId covers an interpreter that stopped reading its input.
	PipeFailedId
)

type (
	// Id identifies an issue in the catalog.
	Id int

	// MarkdownMsg is Markdown guidance shown to the user.
	MarkdownMsg string

	// Issue is a catalog entry with Markdown guidance.
	Issue struct {
		id    Id
		title string
		mdMsg MarkdownMsg
	}
)

var (
	render = glamour.Render

	issues = map[Id]*Issue{
		ConfigLoadFailedId: {
			id:    ConfigLoadFailedId,
			title: "Configuration could not be loaded",
			mdMsg: `
The launcher fell back to its built-in defaults.

## Things you can try
- Show the file being read:
~~~
$ cjc config path
~~~
- Recreate a default file:
~~~
$ cjc config init
~~~`,
		},
		InterpreterNotFoundId: {
			id:    InterpreterNotFoundId,
			title: "No Python interpreter found",
			mdMsg: `
Neither ` + "`python3`" + ` nor ` + "`python`" + ` could be started from your PATH.

## Things you can try
- Install Python 3 and make sure it is on your PATH.
- Point the launcher at a specific interpreter:
~~~
$ cjc --interpreter /usr/local/bin/python3.12
~~~`,
		},
		SpawnFailedId: {
			id:    SpawnFailedId,
			title: "The interpreter could not be started",
			mdMsg: `
The interpreter exists but the operating system refused to run it.

## Things you can try
- Check that the file is executable (` + "`chmod +x`" + `).
- Run ` + "`cjc probe`" + ` to see which interpreter is selected.`,
		},
		PayloadUnavailableId: {
			id:    PayloadUnavailableId,
			title: "The script could not be read",
			mdMsg: `
The bundled script, or the file named by ` + "`script_path`" + `, could not be opened.

## Things you can try
- Remove ` + "`script_path`" + ` from your configuration to use the bundled script.`,
		},
		PipeFailedId: {
			id:    PipeFailedId,
			title: "The interpreter stopped reading the script",
			mdMsg: `
The interpreter exited before the whole script was delivered.

## Things you can try
- Make sure the selected command reads a program from standard input.`,
		},
	}
)

// Id returns the issue identifier.
func (i *Issue) Id() Id { return i.id }

// Title returns a one-line summary.
func (i *Issue) Title() string { return i.title }

// MarkdownMsg returns the raw Markdown guidance.
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// Markdown returns the full document: title heading plus guidance.
func (i *Issue) Markdown() string {
	return "# " + i.title + "\n" + strings.TrimRight(string(i.mdMsg), "\n") + "\n"
}

// Render renders the issue for a terminal using the named glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
