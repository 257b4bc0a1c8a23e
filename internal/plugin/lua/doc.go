// Package lua wraps gopher-lua in a sandboxed State.
//
// A State opens only the base, table, string and math libraries, removes
// the file-loading builtins and limits require to preloaded modules:
//
//	state := lua.NewState(lua.WithExecutionTimeout(2 * time.Second))
//	defer state.Close()
//	state.PreloadModule("hs", loader)
//	err := state.DoString(`local hs = require("hs") hs.message("hi")`)
//
// Scripts that run past the execution timeout are aborted with
// ErrExecutionTimeout.
package lua
