package viewer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log"
	"math"
	"path"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/pulpcase/pkg/surface"
)

// 默认模型路径与加载提示元素
const (
	DefaultModelPath = "assets/models/teeth.obj"
	LoadingID        = "modelLoading"
)

const fallbackNotice = "Detailed model unavailable, showing a simplified arch."

var errNoReader = errors.New("no file reader configured")

const (
	cameraDistance = 2.4
	maxPitch       = math.Pi / 2.5
)

// Viewer 三维模型查看器
//
// MountModel 是幂等的：第一次调用加载模型，之后的调用不做任何事。
type Viewer struct {
	surface  surface.Surface
	readFile func(string) ([]byte, error)

	ModelPath string
	// AutoRotate 自动旋转速度（弧度/秒），拖动时暂停
	AutoRotate float64

	mesh        *Mesh
	fallback    bool
	mounted     bool
	containerID string

	yaw, pitch float64
	dragging   bool

	white *ebiten.Image
}

// NewViewer 创建查看器；readFile 用于读取模型与材质文件
func NewViewer(s surface.Surface, readFile func(string) ([]byte, error)) *Viewer {
	return &Viewer{
		surface:    s,
		readFile:   readFile,
		ModelPath:  DefaultModelPath,
		AutoRotate: 0.35,
		pitch:      0.45,
	}
}

// MountModel 在容器中加载模型
func (v *Viewer) MountModel(containerID string) {
	if v.mounted {
		return
	}
	v.mounted = true
	v.containerID = containerID

	v.surface.Show(LoadingID)
	v.surface.WriteText(LoadingID, "Loading 3D model... 0%")

	mesh, err := v.load()
	if err != nil {
		log.Printf("[Viewer] Warning: Failed to load %s: %v (using procedural arch)", v.ModelPath, err)
		mesh = ProceduralArch()
		v.fallback = true
		v.surface.WriteText(LoadingID, fallbackNotice)
	} else {
		v.surface.WriteText(LoadingID, "Loading 3D model... 100%")
		v.surface.Hide(LoadingID)
	}

	mesh.Normalize()
	v.mesh = mesh
	log.Printf("[Viewer] Mounted in %s: %d vertices, %d faces", containerID, len(mesh.Vertices), len(mesh.Faces))
}

func (v *Viewer) load() (*Mesh, error) {
	if v.readFile == nil {
		return nil, errNoReader
	}
	data, err := v.readFile(v.ModelPath)
	if err != nil {
		return nil, err
	}
	mesh, err := ParseOBJ(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if mesh.MaterialLib != "" {
		mtlPath := path.Join(path.Dir(v.ModelPath), mesh.MaterialLib)
		if mats, err := v.loadMaterials(mtlPath); err != nil {
			log.Printf("[Viewer] Warning: Materials unavailable (%v), loading without them", err)
		} else {
			mesh.Materials = mats
		}
	}
	if hasMaterial(mesh, ProceduralTooth) {
		mesh.Highlight = ProceduralTooth
	}
	return mesh, nil
}

func (v *Viewer) loadMaterials(p string) (map[string]color.RGBA, error) {
	data, err := v.readFile(p)
	if err != nil {
		return nil, err
	}
	return ParseMTL(bytes.NewReader(data))
}

func hasMaterial(m *Mesh, name string) bool {
	for _, f := range m.Faces {
		if f.Material == name {
			return true
		}
	}
	return false
}

// Mounted 是否已加载
func (v *Viewer) Mounted() bool { return v.mounted }

// Fallback 是否使用了程序生成的模型
func (v *Viewer) Fallback() bool { return v.fallback }

// Mesh 返回当前模型，未加载时为 nil
func (v *Viewer) Mesh() *Mesh { return v.mesh }

// Reset 重开病例时恢复初始视角
// 模型保持加载，在 Board 复位之后重新写入加载提示的最终状态
func (v *Viewer) Reset() {
	v.yaw = 0
	v.pitch = 0.45
	v.dragging = false
	if !v.mounted {
		return
	}
	if v.fallback {
		v.surface.WriteText(LoadingID, fallbackNotice)
	} else {
		v.surface.Hide(LoadingID)
	}
}

// Rotate 按拖动量旋转，俯仰角有上下限
func (v *Viewer) Rotate(dYaw, dPitch float64) {
	v.yaw = math.Mod(v.yaw+dYaw, 2*math.Pi)
	v.pitch = math.Max(-maxPitch, math.Min(maxPitch, v.pitch+dPitch))
}

// Angles 返回当前偏航角与俯仰角
func (v *Viewer) Angles() (yaw, pitch float64) {
	return v.yaw, v.pitch
}

// SetDragging 拖动期间暂停自动旋转
func (v *Viewer) SetDragging(dragging bool) {
	v.dragging = dragging
}

// Update 自动旋转
func (v *Viewer) Update(deltaTime float64) {
	if v.mesh == nil || v.dragging {
		return
	}
	v.Rotate(v.AutoRotate*deltaTime, 0)
}

// Project 将模型坐标投影到 w×h 视口，返回屏幕坐标和深度（越大越近）
func (v *Viewer) Project(p Vec3, w, h float64) (float64, float64, float64) {
	sy, cy := math.Sincos(v.yaw)
	x := p.X*cy + p.Z*sy
	z := -p.X*sy + p.Z*cy

	sp, cp := math.Sincos(v.pitch)
	y := p.Y*cp - z*sp
	z = p.Y*sp + z*cp

	f := math.Min(w, h) * 1.6 / (cameraDistance - z)
	return w/2 + x*f, h/2 - y*f, z
}

type projectedFace struct {
	pts   [3][2]float64
	depth float64
	clr   color.RGBA
	edge  bool
}

// Draw 在 rect 区域内绘制模型（画家算法 + 按法线明暗）
func (v *Viewer) Draw(dst *ebiten.Image, rect image.Rectangle) {
	if v.mesh == nil || rect.Empty() {
		return
	}
	if v.white == nil {
		v.white = ebiten.NewImage(3, 3)
		v.white.Fill(color.White)
	}

	w, h := float64(rect.Dx()), float64(rect.Dy())
	ox, oy := float64(rect.Min.X), float64(rect.Min.Y)

	faces := make([]projectedFace, 0, len(v.mesh.Faces))
	for _, f := range v.mesh.Faces {
		var pf projectedFace
		var depth float64
		for i, vi := range f.V {
			x, y, z := v.Project(v.mesh.Vertices[vi], w, h)
			pf.pts[i] = [2]float64{ox + x, oy + y}
			depth += z
		}
		pf.depth = depth / 3
		pf.clr = shade(v.mesh.Color(f), pf.pts)
		pf.edge = v.mesh.Highlight != "" && f.Material == v.mesh.Highlight
		faces = append(faces, pf)
	}
	sort.Slice(faces, func(i, j int) bool { return faces[i].depth < faces[j].depth })

	src := v.white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	vertices := make([]ebiten.Vertex, 0, len(faces)*3)
	indices := make([]uint16, 0, len(faces)*3)
	flush := func() {
		if len(indices) > 0 {
			dst.DrawTriangles(vertices, indices, src, &ebiten.DrawTrianglesOptions{})
		}
		vertices, indices = vertices[:0], indices[:0]
	}

	for _, pf := range faces {
		if len(vertices)+3 > math.MaxUint16 {
			flush()
		}
		base := uint16(len(vertices))
		for _, p := range pf.pts {
			vertices = append(vertices, ebiten.Vertex{
				DstX:   float32(p[0]),
				DstY:   float32(p[1]),
				SrcX:   1,
				SrcY:   1,
				ColorR: float32(pf.clr.R) / 255,
				ColorG: float32(pf.clr.G) / 255,
				ColorB: float32(pf.clr.B) / 255,
				ColorA: 1,
			})
		}
		indices = append(indices, base, base+1, base+2)
	}
	flush()

	for _, pf := range faces {
		if !pf.edge {
			continue
		}
		for i := 0; i < 3; i++ {
			a, b := pf.pts[i], pf.pts[(i+1)%3]
			vector.StrokeLine(dst, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), 1, HighlightColor, true)
		}
	}
}

// shade 按屏幕空间三角形的朝向调整亮度
func shade(c color.RGBA, pts [3][2]float64) color.RGBA {
	ax, ay := pts[1][0]-pts[0][0], pts[1][1]-pts[0][1]
	bx, by := pts[2][0]-pts[0][0], pts[2][1]-pts[0][1]
	area := math.Abs(ax*by - ay*bx)
	perimeter := math.Hypot(ax, ay) + math.Hypot(bx, by) + math.Hypot(pts[2][0]-pts[1][0], pts[2][1]-pts[1][1])

	// 面越正对观察者，面积与周长平方之比越大
	k := 0.55
	if perimeter > 0 {
		k += 0.45 * math.Min(1, area/(perimeter*perimeter)*20.8)
	}
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: c.A,
	}
}
