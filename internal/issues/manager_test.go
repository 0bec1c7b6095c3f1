package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Manager_OneOffSuppression(t *testing.T) {
	assert := assert.New(t)

	mgr := NewManager()

	mgr.Add(New(CodeTokenUnreachable, WarningOneOff, Location{Line: 1}, nil, "first"))
	mgr.Add(New(CodeTokenUnreachable, WarningOneOff, Location{Line: 2}, nil, "second"))

	assert.Len(mgr.All(), 1)
	assert.Equal("first", mgr.All()[0].Message)
}

func Test_Manager_ErrorCount(t *testing.T) {
	assert := assert.New(t)

	mgr := NewManager()
	mgr.Add(New(CodeIllegalOption, Warning, Location{}, nil, "warn"))
	assert.Equal(0, mgr.ErrorCount())

	mgr.Add(New(CodeLeftRecursionCycles, Error, Location{}, nil, "err"))
	assert.Equal(1, mgr.ErrorCount())

	mgr.Add(New(CodeInternalError, Fatal, Location{}, nil, "fatal"))
	assert.Equal(2, mgr.ErrorCount())
}

func Test_Manager_WarningsAreErrors(t *testing.T) {
	assert := assert.New(t)

	mgr := NewManager()
	mgr.WarningsAreErrors(true)
	mgr.Add(New(CodeIllegalOption, Warning, Location{}, nil, "warn"))

	assert.Equal(1, mgr.ErrorCount())
	assert.Len(mgr.All(), 2)
	assert.Equal(CodeWarningTreatedAsError, mgr.All()[1].Code)
}

func Test_Manager_ListenerFanOut(t *testing.T) {
	assert := assert.New(t)

	mgr := NewManager()
	var seen []Code
	mgr.AddListener(ListenerFunc(func(iss *Issue) {
		seen = append(seen, iss.Code)
	}))

	mgr.Add(New(CodeEpsilonToken, Warning, Location{}, nil, "x"))
	mgr.Add(New(CodeTokenUnreachable, Error, Location{}, nil, "y"))

	assert.Equal([]Code{CodeEpsilonToken, CodeTokenUnreachable}, seen)
}

func Test_Format_ANTLR(t *testing.T) {
	assert := assert.New(t)

	iss := New(CodeEpsilonToken, Warning, Location{File: "T.g4", Line: 3, Column: 5}, nil, "rule matches empty string")
	got := FormatANTLR.String(iss)
	assert.Contains(got, "T.g4:3:5")
	assert.Contains(got, "rule matches empty string")
}
