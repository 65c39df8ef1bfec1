package notice

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestErrorNoticeDismiss(t *testing.T) {
	m := New(80)
	m.Error("保存に失敗しました", errors.New("backend error (500)"))
	require.True(t, m.Active())
	assert.Contains(t, m.View(), "backend error (500)")

	m, cmd := m.Update(keyMsg("x"))
	assert.True(t, m.Active())
	assert.Nil(t, cmd)

	m, cmd = m.Update(keyMsg("enter"))
	assert.False(t, m.Active())
	require.NotNil(t, cmd)
	assert.Equal(t, DismissedMsg{}, cmd())
}

func TestConfirmYes(t *testing.T) {
	m := New(80)
	m.Confirm("削除しますか？", 42)

	m, cmd := m.Update(keyMsg("y"))
	assert.False(t, m.Active())
	require.NotNil(t, cmd)
	assert.Equal(t, ConfirmedMsg{Action: 42}, cmd())
}

func TestConfirmNo(t *testing.T) {
	m := New(80)
	m.Confirm("削除しますか？", "x")

	m, cmd := m.Update(keyMsg("esc"))
	assert.False(t, m.Active())
	assert.Equal(t, CanceledMsg{}, cmd())
}

func TestInactiveIgnoresKeys(t *testing.T) {
	m := New(80)
	m, cmd := m.Update(keyMsg("enter"))
	assert.Nil(t, cmd)
	assert.Empty(t, m.View())
}
