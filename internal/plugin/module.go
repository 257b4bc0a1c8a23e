package plugin

import (
	"errors"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hexstorm/internal/command"
	"github.com/dshills/hexstorm/internal/engine/format"
	"github.com/dshills/hexstorm/internal/engine/history"
)

// loader builds the hs module table. Offsets are zero-based byte offsets
// into the buffer.
func (r *Runtime) loader(L *lua.LState) int {
	mod := L.NewTable()

	L.SetField(mod, "len", L.NewFunction(r.bufLen))
	L.SetField(mod, "chunk", L.NewFunction(r.chunk))
	L.SetField(mod, "byte", L.NewFunction(r.byteAt))
	L.SetField(mod, "insert", L.NewFunction(r.insert))
	L.SetField(mod, "remove", L.NewFunction(r.remove))
	L.SetField(mod, "overwrite", L.NewFunction(r.overwrite))
	L.SetField(mod, "find", L.NewFunction(r.find))
	L.SetField(mod, "cursor", L.NewFunction(r.cursor))
	L.SetField(mod, "select", L.NewFunction(r.selectRange))
	L.SetField(mod, "undo", L.NewFunction(r.undo))
	L.SetField(mod, "redo", L.NewFunction(r.redo))
	L.SetField(mod, "message", L.NewFunction(r.message))
	L.SetField(mod, "error", L.NewFunction(r.errorMessage))
	L.SetField(mod, "formatter", L.NewFunction(r.formatter))
	L.SetField(mod, "path", L.NewFunction(r.path))
	L.SetField(mod, "command", L.NewFunction(r.command))

	L.Push(mod)
	return 1
}

// len() -> number
func (r *Runtime) bufLen(L *lua.LState) int {
	L.Push(lua.LNumber(r.editor.Len()))
	return 1
}

// chunk(offset, length) -> string
// Out-of-range parts are clipped.
func (r *Runtime) chunk(L *lua.LState) int {
	offset := L.CheckInt(1)
	length := L.CheckInt(2)
	L.Push(lua.LString(r.editor.Chunk(offset, length)))
	return 1
}

// byte(offset) -> number | nil
func (r *Runtime) byteAt(L *lua.LState) int {
	b, ok := r.editor.Byte(L.CheckInt(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(b))
	return 1
}

// insert(offset, data)
func (r *Runtime) insert(L *lua.LState) int {
	offset := L.CheckInt(1)
	data := L.CheckString(2)
	if err := r.editor.InsertBytes(offset, []byte(data)); err != nil {
		L.RaiseError("insert: %v", err)
	}
	return 0
}

// remove(offset, length) -> string
// Returns the removed bytes.
func (r *Runtime) remove(L *lua.LState) int {
	offset := L.CheckInt(1)
	length := L.CheckInt(2)
	removed, err := r.editor.RemoveBytes(offset, length)
	if err != nil {
		L.RaiseError("remove: %v", err)
		return 0
	}
	L.Push(lua.LString(removed))
	return 1
}

// overwrite(offset, data)
func (r *Runtime) overwrite(L *lua.LState) int {
	offset := L.CheckInt(1)
	data := L.CheckString(2)
	if err := r.editor.OverwriteBytes(offset, []byte(data)); err != nil {
		L.RaiseError("overwrite: %v", err)
	}
	return 0
}

// find(pattern) -> {{start=, ["end"]=}, ...}
// An invalid pattern raises; no match returns an empty table.
func (r *Runtime) find(L *lua.LState) int {
	pattern := L.CheckString(1)
	matches, err := r.editor.FindAll(pattern)
	if err != nil {
		L.RaiseError("find: %v", err)
		return 0
	}

	tbl := L.CreateTable(len(matches), 0)
	for _, m := range matches {
		entry := L.CreateTable(0, 2)
		L.SetField(entry, "start", lua.LNumber(m.Start))
		L.SetField(entry, "end", lua.LNumber(m.End))
		tbl.Append(entry)
	}
	L.Push(tbl)
	return 1
}

// cursor() -> offset, length
func (r *Runtime) cursor(L *lua.LState) int {
	L.Push(lua.LNumber(r.editor.CursorOffset()))
	L.Push(lua.LNumber(r.editor.CursorLength()))
	return 2
}

// select(offset, length)
func (r *Runtime) selectRange(L *lua.LState) int {
	offset := L.CheckInt(1)
	length := L.OptInt(2, 1)
	if err := r.editor.MakeSelection(offset, length); err != nil {
		L.RaiseError("select: %v", err)
	}
	return 0
}

// undo() -> bool
// Returns false when there is nothing to undo.
func (r *Runtime) undo(L *lua.LState) int {
	return r.replay(L, "undo", r.editor.Undo)
}

// redo() -> bool
func (r *Runtime) redo(L *lua.LState) int {
	return r.replay(L, "redo", r.editor.Redo)
}

func (r *Runtime) replay(L *lua.LState, name string, fn func() error) int {
	err := fn()
	switch {
	case err == nil:
		L.Push(lua.LTrue)
	case errors.Is(err, history.ErrEmptyStack):
		L.Push(lua.LFalse)
	default:
		L.RaiseError("%s: %v", name, err)
		return 0
	}
	return 1
}

// message(text)
func (r *Runtime) message(L *lua.LState) int {
	r.editor.SetUserMessage(L.CheckString(1))
	return 0
}

// error(text)
func (r *Runtime) errorMessage(L *lua.LState) int {
	r.editor.SetErrorMessage(L.CheckString(1))
	return 0
}

// formatter([name]) -> string
// With a name, switches the formatter first.
func (r *Runtime) formatter(L *lua.LState) int {
	if L.GetTop() >= 1 {
		kind, err := format.ParseKind(L.CheckString(1))
		if err != nil {
			L.RaiseError("formatter: %v", err)
			return 0
		}
		r.editor.SetFormatter(kind)
	}
	L.Push(lua.LString(r.editor.Formatter().Kind().String()))
	return 1
}

// path() -> string
func (r *Runtime) path(L *lua.LState) int {
	L.Push(lua.LString(r.editor.FilePath()))
	return 1
}

// command(line) -> bool
// Runs a command line. Returns false when the command asked to quit.
func (r *Runtime) command(L *lua.LState) int {
	err := r.shell.RunLine(L.CheckString(1))
	switch {
	case err == nil:
		L.Push(lua.LTrue)
	case errors.Is(err, command.ErrQuit):
		L.Push(lua.LFalse)
	default:
		L.RaiseError("command: %v", err)
		return 0
	}
	return 1
}
