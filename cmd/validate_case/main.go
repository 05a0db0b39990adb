// Package main 校验病例目录：YAML 结构、脚本引用的元素和副作用、媒体与模型文件。
//
// Usage:
//
//	go run ./cmd/validate_case [--case data/case] [--model assets/models/teeth.obj]
//
// 结构错误时退出码为 1；缺失的媒体或模型文件只给出警告（运行时会降级处理）。
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/decker502/pulpcase/pkg/caseplay"
	"github.com/decker502/pulpcase/pkg/config"
	"github.com/decker502/pulpcase/pkg/viewer"
)

var (
	caseFlag  = flag.String("case", config.DefaultCaseDir, "Case directory")
	modelFlag = flag.String("model", viewer.DefaultModelPath, "OBJ model shown in the 3D view")
)

// report 校验结果
type report struct {
	Errors   []string
	Warnings []string
}

func (r *report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// checkReferences 检查脚本和场景引用的元素、副作用是否存在
func checkReferences(r *report, cfg *config.CaseConfig) {
	play := caseplay.New(cfg, caseplay.Options{})

	for _, sc := range cfg.Scenes {
		if sc.OnEnter != "" && !play.Runner.Registered(sc.OnEnter) {
			r.errorf("scene %d: onEnter %q has no registered effect", sc.Index, sc.OnEnter)
		}
		for _, el := range sc.Elements {
			if el.Parent != "" && !play.Board.Exists(el.Parent) {
				r.errorf("scene %d: element %q has unknown parent %q", sc.Index, el.ID, el.Parent)
			}
		}
		for j, st := range sc.Steps {
			var targets []string
			targets = append(targets, st.Show...)
			targets = append(targets, st.Hide...)
			if st.Type != nil {
				targets = append(targets, st.Type.Target)
			}
			if st.Say != nil {
				targets = append(targets, st.Say.Container, st.Say.Target)
			}
			for _, id := range targets {
				if !play.Board.Exists(id) {
					r.errorf("scene %d step %d: unknown element %q", sc.Index, j, id)
				}
			}
			if st.Invoke != "" && !play.Runner.Registered(st.Invoke) {
				r.errorf("scene %d step %d: invoke %q has no registered effect", sc.Index, j, st.Invoke)
			}
		}
	}
}

// checkFiles 检查媒体和模型文件；缺失只是警告
func checkFiles(r *report, cfg *config.CaseConfig, modelPath string, readFile config.ReadFileFunc) {
	for id, p := range cfg.Resources {
		if _, err := readFile(p); err != nil {
			r.warnf("media %s: %v (scene will stay silent)", id, err)
		}
	}

	data, err := readFile(modelPath)
	if err != nil {
		r.warnf("model: %v (procedural arch will be shown)", err)
		return
	}
	mesh, err := viewer.ParseOBJ(bytes.NewReader(data))
	if err != nil {
		r.errorf("model %s: %v", modelPath, err)
		return
	}
	if mesh.MaterialLib == "" {
		return
	}
	mtl := path.Join(path.Dir(modelPath), mesh.MaterialLib)
	data, err = readFile(mtl)
	if err != nil {
		r.warnf("model materials: %v (default colors will be used)", err)
		return
	}
	if _, err := viewer.ParseMTL(bytes.NewReader(data)); err != nil {
		r.errorf("model materials %s: %v", mtl, err)
	}
}

// validate 校验病例目录并把结果写到 w，返回是否通过
func validate(w io.Writer, dir, modelPath string, readFile config.ReadFileFunc) bool {
	cfg, err := config.LoadCaseConfig(dir, readFile)
	if err != nil {
		fmt.Fprintf(w, "✗ %v\n", err)
		return false
	}
	fmt.Fprintf(w, "✓ %s: %d scenes, %d quizzes, %d pain-profile fields, %d dialogue lines\n",
		dir, len(cfg.Scenes), len(cfg.Quizzes), len(cfg.PainProfile.Fields), len(cfg.Dialogues))

	r := &report{}
	checkReferences(r, cfg)
	checkFiles(r, cfg, modelPath, readFile)

	for _, msg := range r.Warnings {
		fmt.Fprintf(w, "  ⚠ %s\n", msg)
	}
	for _, msg := range r.Errors {
		fmt.Fprintf(w, "  ✗ %s\n", msg)
	}
	return len(r.Errors) == 0
}

func main() {
	flag.Parse()
	if !validate(os.Stdout, *caseFlag, *modelFlag, os.ReadFile) {
		os.Exit(1)
	}
}
