package parser

import "github.com/dj1mm/vhdlstuff-sub000/token"

// isConcurrentStatementStart and isSequentialStatementStart classify the
// token that opens a statement (after an optional `<label> :` prefix, which
// the actual parse functions peek past themselves).
func isConcurrentStatementStart(k token.Kind) bool {
	switch k {
	case token.IDENT, token.EXTIDENT, token.PROCESS, token.BLOCK,
		token.FOR, token.IF, token.WITH, token.ASSERT, token.POSTPONED:
		return true
	}
	return false
}

func isSequentialStatementStart(k token.Kind) bool {
	switch k {
	case token.IDENT, token.EXTIDENT, token.IF, token.CASE, token.FOR,
		token.WHILE, token.LOOP, token.NEXT, token.EXIT, token.RETURN,
		token.NULL, token.WAIT, token.ASSERT, token.REPORT:
		return true
	}
	return false
}

// isDeclarativeItemStart classifies the token that opens one item of a
// declarative part, covering every declaration kind entity/architecture/
// package/package body/process/subprogram/block/generate declarative parts
// can hold.
func isDeclarativeItemStart(k token.Kind) bool {
	switch k {
	case token.TYPE, token.SUBTYPE, token.CONSTANT, token.SIGNAL,
		token.VARIABLE, token.FILE, token.SHARED, token.ALIAS,
		token.ATTRIBUTE, token.COMPONENT, token.FUNCTION, token.PROCEDURE,
		token.PURE, token.IMPURE, token.USE, token.FOR, token.DISCONNECT,
		token.GROUP:
		return true
	}
	return false
}

func isInterfaceItemStart(k token.Kind) bool {
	switch k {
	case token.IDENT, token.EXTIDENT, token.CONSTANT, token.SIGNAL,
		token.VARIABLE, token.FILE:
		return true
	}
	return false
}

// stateBeginTokens and stateEndTokens classify, for every error-recovery
// state, the tokens that begin one of its elements or terminate it - used
// only by claimedByOtherState to let an enclosing production reclaim a
// token from a nested parse_many loop that has stalled on it. The specific
// isEnd closure each parseMany/parseManySep call site passes can be (and
// often is) narrower than the entry recorded here: this table only needs to
// be wide enough to recognize "some other active production wants this
// token", not to itself decide when that production's own loop stops.
var stateBeginTokens = [numStates]func(token.Kind) bool{
	stateDesignUnitInFile:        isDesignUnitStart,
	stateContextClause:           func(k token.Kind) bool { return k == token.LIBRARY || k == token.USE },
	stateInterfaceList:           isInterfaceItemStart,
	stateDeclarativePartBeginEnd: isDeclarativeItemStart,
	stateDeclarativePartBegin:    isDeclarativeItemStart,
	stateDeclarativePartEnd:      isDeclarativeItemStart,
	stateDeclarativePartFor:      isDeclarativeItemStart,
	stateEntityStatementPart:     isConcurrentStatementStart,
	stateConcurrentStatements:    isConcurrentStatementStart,
	stateSequentialStatements:    isSequentialStatementStart,
}

var stateEndTokens = [numStates]func(token.Kind) bool{
	stateDesignUnitInFile:        func(token.Kind) bool { return false },
	stateContextClause:           isDesignUnitStart,
	stateInterfaceList:           func(k token.Kind) bool { return k == token.RPAREN },
	stateDeclarativePartBeginEnd: func(k token.Kind) bool { return k == token.BEGIN || k == token.END },
	stateDeclarativePartBegin:    func(k token.Kind) bool { return k == token.BEGIN },
	stateDeclarativePartEnd:      func(k token.Kind) bool { return k == token.END },
	stateDeclarativePartFor:      func(k token.Kind) bool { return k == token.BEGIN || k == token.END || k == token.GENERATE },
	stateEntityStatementPart:     func(k token.Kind) bool { return k == token.END },
	stateConcurrentStatements:    func(k token.Kind) bool { return k == token.END },
	stateSequentialStatements: func(k token.Kind) bool {
		switch k {
		case token.END, token.ELSE, token.ELSIF, token.WHEN:
			return true
		}
		return false
	},
}
