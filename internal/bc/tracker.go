// tracker.go: the partial-allocation tracker.
//
// Parsing proceeds post-order: children are built before their parent, so
// at any moment during a command's construction there is a set of AST
// fragments that exist but are not yet attached to anything. The tracker
// makes that set explicit so a parse or semantic failure can discard
// exactly those fragments (ReleaseAll) without walking the whole AST. Go
// is garbage collected, so ReleaseAll does not free memory by hand; it
// just drops the tracker's own references, so nothing it was holding is
// reachable through it once a command fails, and the tracker sits empty
// after every command that succeeds.
package bc

// stringHandle is what NoteString returns and ConsumeString consumes. It
// exists so identifiers can be tracked by identity rather than by value:
// two "x" tokens at different source positions must not be confused with
// each other the way plain string comparison would.
type stringHandle struct{ s string }

// AllocTracker owns every AST fragment and pending identifier currently in
// flight while building one command.
type AllocTracker struct {
	nodes   []any
	strings []*stringHandle
}

// Push records ownership of a freshly built fragment (an Expr, Stmt, *Block,
// or *FunctionDefinition).
func (t *AllocTracker) Push(node any) {
	t.nodes = append(t.nodes, node)
}

// Pop surrenders ownership of the top n fragments, because the caller is
// about to attach them as children of a new parent. The order in which
// entries are removed is unobservable — callers only rely on popping
// exactly the fragments they are about to adopt.
func (t *AllocTracker) Pop(n int) {
	if n > len(t.nodes) {
		panic("tracker: pop count exceeds tracked fragments")
	}
	t.nodes = t.nodes[:len(t.nodes)-n]
}

// PopAndPush is the common pattern: adopt n pending fragments into parent,
// then track parent itself.
func (t *AllocTracker) PopAndPush(n int, parent any) {
	t.Pop(n)
	t.Push(parent)
}

// NoteString tracks an identifier the tokenizer produced before it has been
// attached anywhere (e.g. while a parameter list is being accumulated).
// Returns a handle so the caller can hand it to ConsumeString later without
// ambiguity if the same text appears twice.
func (t *AllocTracker) NoteString(s string) *stringHandle {
	h := &stringHandle{s: s}
	t.strings = append(t.strings, h)
	return h
}

// ConsumeString locates h by identity (not by string value) and removes it:
// the caller has just adopted the identifier into a larger fragment (a
// params/autos list) and the tracker no longer owns it independently.
func (t *AllocTracker) ConsumeString(h *stringHandle) string {
	for i, x := range t.strings {
		if x == h {
			t.strings = append(t.strings[:i], t.strings[i+1:]...)
			return x.s
		}
	}
	panic("tracker: consumeString on untracked handle")
}

// ReleaseAll discards every tracked fragment and pending string. Called on
// any parse or semantic failure mid-command.
func (t *AllocTracker) ReleaseAll() {
	t.nodes = nil
	t.strings = nil
}

// Empty reports whether the tracker currently owns nothing — true after
// any successfully completed command.
func (t *AllocTracker) Empty() bool {
	return len(t.nodes) == 0 && len(t.strings) == 0
}
