package sequencer

import (
	"github.com/decker502/pulpcase/pkg/config"
	"github.com/decker502/pulpcase/pkg/effects"
	"github.com/decker502/pulpcase/pkg/session"
	"github.com/decker502/pulpcase/pkg/surface"
	"github.com/decker502/pulpcase/pkg/timing"
)

// fakeMedia 记录播放请求
type fakeMedia struct {
	calls []string
}

func (m *fakeMedia) Play(ref string) bool {
	m.calls = append(m.calls, "play:"+ref)
	return true
}

func (m *fakeMedia) Stop() {
	m.calls = append(m.calls, "stop")
}

type fixture struct {
	session  *session.Session
	board    *surface.Board
	recorder *surface.Recorder
	sched    *timing.Scheduler
	runner   *Runner
	media    *fakeMedia
	entered  map[string]int
	advanced int
}

// testScenes 三个场景: 0 静态，1 对话，2 自动翻页
func testScenes() []config.SceneConfig {
	return []config.SceneConfig{
		{Index: 0, Title: "intro"},
		{
			Index: 1,
			Title: "dialogue",
			Media: "SOUND_AMBIENCE",
			Steps: []config.StepConfig{
				{Hide: config.StringList{"bubble-1", "btn-1"}},
				{Wait: 300},
				{Say: &config.SayStep{Container: "bubble-1", Target: "line-1", Line: "a", Speed: 10}},
				{Wait: 400},
				{Show: config.StringList{"btn-1"}},
			},
			OnEnter: "mark:dialogue",
		},
		{
			Index: 2,
			Title: "auto",
			Steps: []config.StepConfig{
				{Wait: 100},
				{Advance: true},
			},
			OnEnter: "mark:auto",
		},
	}
}

func newFixture() *fixture {
	board := surface.NewBoard()
	board.Register(surface.Element{ID: "bubble-1", Kind: surface.KindBubble, Scene: 1})
	board.Register(surface.Element{ID: "line-1", Kind: surface.KindText, Scene: 1, Parent: "bubble-1"})
	board.Register(surface.Element{ID: "btn-1", Kind: surface.KindButton, Scene: 1})

	f := &fixture{
		session:  session.New(3, nil, nil),
		board:    board,
		recorder: surface.NewRecorder(board),
		sched:    timing.NewScheduler(),
		media:    &fakeMedia{},
		entered:  make(map[string]int),
	}

	cfg := &config.CaseConfig{Scenes: testScenes()}
	dialogues := map[string]string{"a": "hi there"}
	tw := effects.NewTypewriter(f.recorder, f.sched)
	f.runner = NewRunner(f.session, f.recorder, f.sched, tw, dialogues, BuildScripts(cfg))
	f.runner.SetMedia(f.media)
	f.runner.SetAdvance(func(alive func() bool) {
		if alive() {
			f.advanced++
		}
	})
	f.runner.Register("mark", func(tok Token, arg string) { f.entered[arg]++ })
	return f
}

// enter 模拟导航：先修改场景索引再进入
func (f *fixture) enter(index int) Token {
	f.session.CurrentScene = index
	return f.runner.EnterScene(index)
}

type elementState struct {
	Text    string
	Visible bool
	Cursor  bool
}

func (f *fixture) snapshot() map[string]elementState {
	out := make(map[string]elementState)
	for _, e := range f.board.Elements(nil) {
		out[e.ID] = elementState{Text: e.Text, Visible: e.Visible, Cursor: e.Cursor}
	}
	return out
}
