package main

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	orchestration "github.com/koscakluka/ema-voiceturn/core"
	"github.com/koscakluka/ema-voiceturn/core/conversations"
	"github.com/koscakluka/ema-voiceturn/core/events"
	"github.com/muesli/reflow/wordwrap"
)

const defaultWidth = 80

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	userLabel      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).Render("사용자")
	assistantLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35")).Render("AI")
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// voiceSession is the part of the orchestrator the terminal reads and drives.
type voiceSession interface {
	BeginVoiceTurn(ctx context.Context) bool
	Snapshot() orchestration.SessionState
}

type turnEventMsg struct {
	event events.Event
}

type model struct {
	ctx     context.Context
	session voiceSession

	spinner spinner.Model
	width   int

	state      orchestration.SessionState
	lastFailed string
}

func newModel(ctx context.Context, session voiceSession) model {
	return model{
		ctx:     ctx,
		session: session,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:   defaultWidth,
		state:   session.Snapshot(),
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case " ", "enter":
			if m.session.BeginVoiceTurn(m.ctx) {
				m.lastFailed = ""
			}
			m.state = m.session.Snapshot()
		}
		return m, nil

	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil

	case turnEventMsg:
		if failed, ok := msg.event.(events.TurnFailed); ok {
			m.lastFailed = describeFailure(failed)
		}
		m.state = m.session.Snapshot()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("오늘은 무엇을 하시겠어요?"))
	b.WriteString("\n\n")

	for _, turn := range m.state.Transcript {
		b.WriteString(renderTurn(turn, m.width))
		b.WriteString("\n\n")
	}

	switch {
	case m.state.Listening:
		b.WriteString(m.spinner.View() + " 듣고 있습니다...")
	case m.state.AwaitingReply:
		b.WriteString(m.spinner.View() + " AI가 응답을 생성 중입니다...")
	default:
		if m.lastFailed != "" {
			b.WriteString(errorStyle.Render(m.lastFailed))
			b.WriteString("\n")
		}
		b.WriteString(statusStyle.Render("스페이스 또는 엔터: 대화하기 · q: 종료"))
	}
	b.WriteString("\n")

	return b.String()
}

func renderTurn(turn conversations.Turn, width int) string {
	label := assistantLabel
	if turn.Role == conversations.RoleUser {
		label = userLabel
	}
	return label + "\n" + wordwrap.String(turn.Content, max(width-2, 20))
}

func describeFailure(failed events.TurnFailed) string {
	switch {
	case errors.Is(failed.Err, orchestration.ErrNoSpeechDetected):
		return "말씀을 듣지 못했어요. 다시 시도해 주세요."
	case errors.Is(failed.Err, orchestration.ErrCaptureEnded):
		return "듣기가 끝났어요. 다시 시도해 주세요."
	case errors.Is(failed.Err, orchestration.ErrCaptureUnavailable):
		return "마이크 또는 음성 인식을 사용할 수 없어요."
	}
	return "문제가 발생했어요 (" + failed.Stage + ")."
}
