package shell

// HookSnippet는 셸 프롬프트마다 denv hook을 평가하는 통합 스니펫을 반환한다.
func HookSnippet(shellType string) string {
	switch shellType {
	case "zsh":
		return `# denv shell integration (zsh)
_denv_hook() {
  eval "$(denv hook "$__denv_data")"
}
typeset -ag precmd_functions
if (( ! ${precmd_functions[(I)_denv_hook]} )); then
  precmd_functions+=(_denv_hook)
fi
`
	case "bash":
		return `# denv shell integration (bash)
_denv_hook() {
  eval "$(denv hook "$__denv_data")"
}
if [[ ";${PROMPT_COMMAND};" != *";_denv_hook;"* ]]; then
  PROMPT_COMMAND="_denv_hook;${PROMPT_COMMAND}"
fi
`
	case "fish":
		return `# denv shell integration (fish)
function _denv_hook --on-event fish_prompt
  denv hook --fish "$__denv_data" | source
end
`
	default:
		return ""
	}
}
