//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/inkboard/inkboard/backend-go/internal/board"
	"github.com/inkboard/inkboard/backend-go/internal/engine"
)

var eng *engine.Engine

func main() {
	eng = engine.New()

	// Create the engine API object
	inkboardEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	inkboardEngine.Set("pointerDown", js.FuncOf(pointerDown))
	inkboardEngine.Set("pointerMove", js.FuncOf(pointerMove))
	inkboardEngine.Set("pointerUp", js.FuncOf(pointerUp))
	inkboardEngine.Set("pointerLeave", js.FuncOf(pointerLeave))
	inkboardEngine.Set("wheel", js.FuncOf(wheel))
	inkboardEngine.Set("pinchStart", js.FuncOf(pinchStart))
	inkboardEngine.Set("pinchMove", js.FuncOf(pinchMove))
	inkboardEngine.Set("pinchEnd", js.FuncOf(pinchEnd))
	inkboardEngine.Set("doubleClick", js.FuncOf(doubleClick))
	inkboardEngine.Set("keyDown", js.FuncOf(keyDown))
	inkboardEngine.Set("setTool", js.FuncOf(setTool))
	inkboardEngine.Set("setColor", js.FuncOf(setColor))
	inkboardEngine.Set("setBrushSize", js.FuncOf(setBrushSize))
	inkboardEngine.Set("setFontSize", js.FuncOf(setFontSize))
	inkboardEngine.Set("setViewport", js.FuncOf(setViewport))
	inkboardEngine.Set("addNote", js.FuncOf(addNote))
	inkboardEngine.Set("setNoteText", js.FuncOf(setNoteText))
	inkboardEngine.Set("commitTextEdit", js.FuncOf(commitTextEdit))
	inkboardEngine.Set("cancelTextEdit", js.FuncOf(cancelTextEdit))
	inkboardEngine.Set("deleteSelection", js.FuncOf(deleteSelection))
	inkboardEngine.Set("undo", js.FuncOf(undo))
	inkboardEngine.Set("redo", js.FuncOf(redo))
	inkboardEngine.Set("clearBoard", js.FuncOf(clearBoard))
	inkboardEngine.Set("resetView", js.FuncOf(resetView))
	inkboardEngine.Set("loadBoard", js.FuncOf(loadBoard))
	inkboardEngine.Set("tick", js.FuncOf(tick))

	// --- Queries (frontend ← backend) ---
	inkboardEngine.Set("render", js.FuncOf(render))
	inkboardEngine.Set("saveBoard", js.FuncOf(saveBoard))
	inkboardEngine.Set("textEditState", js.FuncOf(textEditState))

	// Register on global scope
	js.Global().Set("inkboardEngine", inkboardEngine)

	// Signal that WASM is ready
	js.Global().Set("inkboardWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func eventFromArgs(args []js.Value) engine.PointerEvent {
	ev := engine.PointerEvent{}
	if len(args) >= 2 {
		ev.X = args[0].Float()
		ev.Y = args[1].Float()
	}
	if len(args) >= 3 {
		ev.Button = engine.Button(args[2].Int())
	}
	if len(args) >= 4 {
		ev.PanModifier = args[3].Bool()
	}
	return ev
}

// --- Command Handlers ---

func pointerDown(this js.Value, args []js.Value) interface{} {
	eng.PointerDown(eventFromArgs(args))
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	eng.PointerMove(eventFromArgs(args))
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	eng.PointerUp(eventFromArgs(args))
	return nil
}

func pointerLeave(this js.Value, args []js.Value) interface{} {
	eng.PointerLeave()
	return nil
}

func wheel(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	eng.Wheel(args[0].Float(), args[1].Float(), args[2].Float())
	return nil
}

func pinchStart(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return nil
	}
	eng.PinchStart(args[0].Float(), args[1].Float(), args[2].Float(), args[3].Float())
	return nil
}

func pinchMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return nil
	}
	eng.PinchMove(args[0].Float(), args[1].Float(), args[2].Float(), args[3].Float())
	return nil
}

func pinchEnd(this js.Value, args []js.Value) interface{} {
	eng.PinchEnd()
	return nil
}

func doubleClick(this js.Value, args []js.Value) interface{} {
	eng.DoubleClick(eventFromArgs(args))
	return nil
}

func keyDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(false)
	}
	handled := eng.KeyDown(args[0].String(), args[1].Bool(), args[2].Bool())
	return js.ValueOf(handled)
}

func setTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetTool(engine.Tool(args[0].String()))
	return nil
}

func setColor(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetColor(args[0].String())
	return nil
}

func setBrushSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetBrushSize(args[0].Float())
	return nil
}

func setFontSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetFontSize(args[0].Float())
	return nil
}

func setViewport(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.SetViewport(args[0].Float(), args[1].Float())
	return nil
}

func addNote(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.AddNote())
}

func setNoteText(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.SetNoteText(args[0].Int(), args[1].String())
	return nil
}

func commitTextEdit(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.CommitTextEdit(args[0].String())
	return nil
}

func cancelTextEdit(this js.Value, args []js.Value) interface{} {
	eng.CancelTextEdit()
	return nil
}

func deleteSelection(this js.Value, args []js.Value) interface{} {
	eng.DeleteSelection()
	return nil
}

func undo(this js.Value, args []js.Value) interface{} {
	eng.Undo()
	return nil
}

func redo(this js.Value, args []js.Value) interface{} {
	eng.Redo()
	return nil
}

func clearBoard(this js.Value, args []js.Value) interface{} {
	eng.ClearBoard()
	return nil
}

func resetView(this js.Value, args []js.Value) interface{} {
	eng.ResetView()
	return nil
}

func loadBoard(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing board JSON"})
	}

	f, err := board.Unmarshal([]byte(args[0].String()))
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	board.Apply(f, eng)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func tick(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Tick())
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func saveBoard(this js.Value, args []js.Value) interface{} {
	buf, err := board.Marshal(board.Encode(eng))
	if err != nil {
		return js.ValueOf("")
	}
	return js.ValueOf(string(buf))
}

func textEditState(this js.Value, args []js.Value) interface{} {
	id, anchor, initial, active := eng.TextEditState()
	return js.ValueOf(map[string]interface{}{
		"active":  active,
		"id":      id,
		"x":       anchor.X,
		"y":       anchor.Y,
		"initial": initial,
	})
}
