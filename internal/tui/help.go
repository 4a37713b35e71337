package tui

// helpMarkdown is the full-screen key reference, rendered through glamour.
const helpMarkdown = `# tuido keys

## Moving around

| Key | Action |
|-----|--------|
| j / ↓ | move down |
| k / ↑ | move up |
| gg | jump to first todo |
| G | jump to last todo |

## Editing

| Key | Action |
|-----|--------|
| i | insert a new todo below the selection |
| e | edit the selected todo |
| o | edit the selected todo's note |
| x | toggle completion |
| dd | delete the selected todo |
| v | visual mode (j/k extend, then x/d/y) |
| y | yank, p paste below |
| u | undo, ctrl+r redo |

Prefix a todo with a priority marker like ` + "`(A)`" + ` while inserting
or editing. Esc always discards the input in progress.

## Search

| Key | Action |
|-----|--------|
| / | search; enter jumps to the best match |
| n | cycle through the ranked matches |

## Commands

| Command | Action |
|---------|--------|
| :w | save |
| :q | quit (warns on unsaved changes) |
| :q! | quit without saving |
| :wq | save and quit |
| :clear | remove completed todos |
| :sort | group completed todos first |
| :sort priority | order by priority |
| :write <path> | save a copy to path |
| :open <path> | replace the list from path |
| :export <path>.txt \| .md | export as todo.txt or Markdown |
| :!cmd | run a shell command |
| :help | this screen |
`
