// Package prompt provides simple interactive prompts.
//
// This package contains standalone interactive prompts for common
// user input scenarios. For the fuzzy repository picker used by
// "arbor find", see the parent ui package.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//   - [TextInput]: Single-line text input
package prompt
