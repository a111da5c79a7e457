// Package shell provides shell integration for the prompt hook.
// It generates hook snippets (precmd for Zsh, PROMPT_COMMAND for Bash,
// fish_prompt event for Fish) that re-evaluate denv hook on every prompt,
// replaying the opaque state stored in __denv_data.
package shell
