// Package plugin runs Lua scripts against the editor.
//
// A Runtime owns a sandboxed Lua state and serves the shell's script
// commands (source and lua). Scripts reach the editor through the hs
// module, which is both preloaded and bound to the global hs:
//
//	local hs = require("hs")
//	for _, m in ipairs(hs.find("\\xde\\xad")) do
//	    hs.overwrite(m.start, "\190\239")
//	end
//	hs.command("goto 0")
//
// Offsets are zero-based byte offsets. Errors from the editor are raised
// as Lua errors, which abort the script and surface as the run's error.
//
// # Module functions
//
//	len()                   buffer length
//	chunk(offset, length)   bytes as a string, clipped to the buffer
//	byte(offset)            byte value or nil
//	insert(offset, data)    insert bytes
//	remove(offset, length)  remove bytes, returning them
//	overwrite(offset, data) overwrite bytes, growing at the end
//	find(pattern)           all matches as {start=, ["end"]=} tables
//	cursor()                cursor offset and length
//	select(offset, length)  set the selection
//	undo(), redo()          false when there is nothing to replay
//	message(text)           set the user message
//	error(text)             set the error message
//	formatter([name])       current formatter, switching first if named
//	path()                  current file path
//	command(line)           run a command line, false on quit
//
// A script may not run another script: hs.command("lua ...") and
// hs.command("source ...") fail with ErrReentrant.
package plugin
