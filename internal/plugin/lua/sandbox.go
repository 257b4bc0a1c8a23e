package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// safeModules are the built-in modules require may return.
var safeModules = map[string]bool{
	"string": true,
	"table":  true,
	"math":   true,
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenPackage(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	// io, os and debug are intentionally not opened.
}

// installSandbox removes the builtins that load code from disk or strings
// and replaces print and require.
func installSandbox(L *lua.LState, print func(string)) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	installPrint(L, print)
	installRequire(L)
}

// installPrint routes print to the given function, joining arguments with
// tabs like the stock print.
func installPrint(L *lua.LState, print func(string)) {
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		if print != nil {
			print(strings.Join(parts, "\t"))
		}
		return 0
	}))
}

// installRequire clears the search paths so nothing is loaded from disk
// and only allows preloaded and safe built-in modules.
func installRequire(L *lua.LState) {
	pkg, ok := L.GetGlobal("package").(*lua.LTable)
	if !ok {
		return
	}
	L.SetField(pkg, "path", lua.LString(""))
	L.SetField(pkg, "cpath", lua.LString(""))
	preload, _ := L.GetField(pkg, "preload").(*lua.LTable)

	original := L.GetGlobal("require")
	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		allowed := safeModules[name]
		if !allowed && preload != nil {
			allowed = preload.RawGetString(name) != lua.LNil
		}
		if !allowed {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(original)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))
}
