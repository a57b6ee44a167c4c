package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// PrintFunc receives the output of Lua's print.
type PrintFunc func(msg string)

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	// Open base library (print, type, pairs, ipairs, etc.)
	lua.OpenBase(L)

	// Open safe libraries
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Each Open* leaves its module table on the stack.
	L.Pop(L.GetTop())

	// Note: These are intentionally NOT opened:
	// - io (file system access)
	// - os (system calls, execute)
	// - debug (can bypass sandbox)
	// - package (can load arbitrary modules)
}

// installSandbox removes loaders that reach outside the state and
// redirects print.
func installSandbox(L *lua.LState, print PrintFunc) {
	dangerousFuncs := []string{
		"dofile",     // Load and execute file
		"loadfile",   // Load file as function
		"load",       // Load string as function
		"loadstring", // Load string as function (deprecated but may exist)
		"require",
		"module",
	}
	for _, name := range dangerousFuncs {
		L.SetGlobal(name, lua.LNil)
	}

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
