// Package main 无界面地播放病例并打印演示层时间线，用于检查场景脚本的时序。
//
// Usage:
//
//	go run ./cmd/verify_sequence [flags]
//
// Flags:
//
//	--case <dir>         病例目录 (default: "data/case")
//	--scene <n>          起始场景 (default: 0)
//	--ms <n>             播放的虚拟时长，毫秒 (default: 10000)
//	--actions <list>     定时点击，逗号分隔的 "时间ms:元素ID"，如 "100:btn-scene-0,4000:btnNext"
//	--chars              同时打印打字机逐字输出
//	--verbose            打印运行日志
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/decker502/pulpcase/pkg/caseplay"
	"github.com/decker502/pulpcase/pkg/config"
	"github.com/decker502/pulpcase/pkg/surface"
)

// tickMs 虚拟时钟步长
const tickMs = 10.0

var (
	caseFlag    = flag.String("case", config.DefaultCaseDir, "Case directory")
	sceneFlag   = flag.Int("scene", 0, "Scene index to start from")
	msFlag      = flag.Float64("ms", 10000, "Virtual milliseconds to play")
	actionsFlag = flag.String("actions", "", `Timed clicks, e.g. "100:btn-scene-0,4000:btnNext"`)
	charsFlag   = flag.Bool("chars", false, "Also print per-character typewriter output")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

// timedClick 在虚拟时间 AtMs 点击元素
type timedClick struct {
	AtMs float64
	ID   string
}

// parseActions 解析 --actions，结果按时间排序
func parseActions(s string) ([]timedClick, error) {
	var out []timedClick
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		at, id, ok := strings.Cut(part, ":")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid action %q, want <ms>:<elementID>", part)
		}
		ms, err := strconv.ParseFloat(at, 64)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid time in action %q", part)
		}
		out = append(out, timedClick{AtMs: ms, ID: id})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AtMs < out[j].AtMs })
	return out, nil
}

// traceMedia 把媒体请求写入时间线
type traceMedia struct {
	w   io.Writer
	now func() float64
}

func (m traceMedia) Play(ref string) bool {
	fmt.Fprintf(m.w, "[%7.0fms] media play %s\n", m.now(), ref)
	return true
}

func (m traceMedia) Stop() {
	fmt.Fprintf(m.w, "[%7.0fms] media stop\n", m.now())
}

// run 播放 totalMs 虚拟毫秒，把时间线写到 w，返回结束时的场景
func run(w io.Writer, cfg *config.CaseConfig, start int, totalMs float64, clicks []timedClick, chars bool) int {
	var play *caseplay.Case
	now := func() float64 { return play.Scheduler.Now() }

	var rec *surface.Recorder
	play = caseplay.New(cfg, caseplay.Options{
		Media: traceMedia{w: w, now: now},
		Wrap: func(s surface.Surface) surface.Surface {
			rec = surface.NewRecorder(s)
			return rec
		},
	})
	rec.OnCall = func(c surface.Call) {
		if c.Op == "append" && !chars {
			return
		}
		fmt.Fprintf(w, "[%7.0fms] scene %-2d %s\n", now(), play.Session.CurrentScene, c)
	}

	play.Start(start)
	for now() < totalMs {
		for len(clicks) > 0 && clicks[0].AtMs <= now() {
			ok := play.Click(clicks[0].ID)
			fmt.Fprintf(w, "[%7.0fms] click %s accepted=%v\n", now(), clicks[0].ID, ok)
			clicks = clicks[1:]
		}
		play.Update(tickMs)
	}
	fmt.Fprintf(w, "[%7.0fms] done: scene %d, pending timers %d\n", now(), play.Session.CurrentScene, play.Scheduler.Pending())
	return play.Session.CurrentScene
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	clicks, err := parseActions(*actionsFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.LoadCaseConfig(*caseFlag, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load case: %v\n", err)
		os.Exit(1)
	}

	run(os.Stdout, cfg, *sceneFlag, *msFlag, clicks, *charsFlag)
}
