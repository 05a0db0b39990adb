// Package viewer 显示口腔三维模型
//
// 模型为 Wavefront OBJ（可选 MTL 材质）。材质加载失败时使用默认颜色，
// 几何加载失败时使用程序生成的牙弓模型。任何失败都只记录日志。
package viewer

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"log"
	"math"

	"github.com/udhos/gwob"
)

// Vec3 三维坐标
type Vec3 struct {
	X, Y, Z float64
}

// Face 三角面，顶点为 Mesh.Vertices 的下标
type Face struct {
	V        [3]int
	Material string
}

// Mesh 三角网格
type Mesh struct {
	Vertices  []Vec3
	Faces     []Face
	Materials map[string]color.RGBA
	// MaterialLib OBJ 中 mtllib 引用的文件名
	MaterialLib string
	// Highlight 高亮的材质（患牙）
	Highlight string
}

// DefaultColor 没有材质时的颜色
var DefaultColor = color.RGBA{R: 235, G: 230, B: 215, A: 255}

// HighlightColor 患牙高亮颜色
var HighlightColor = color.RGBA{R: 230, G: 80, B: 70, A: 255}

// Color 返回面的颜色
func (m *Mesh) Color(f Face) color.RGBA {
	if m.Highlight != "" && f.Material == m.Highlight {
		return HighlightColor
	}
	if c, ok := m.Materials[f.Material]; ok {
		return c
	}
	return DefaultColor
}

// Bounds 返回包围盒
func (m *Mesh) Bounds() (lo, hi Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lo.X, hi.X = math.Min(lo.X, v.X), math.Max(hi.X, v.X)
		lo.Y, hi.Y = math.Min(lo.Y, v.Y), math.Max(hi.Y, v.Y)
		lo.Z, hi.Z = math.Min(lo.Z, v.Z), math.Max(hi.Z, v.Z)
	}
	return lo, hi
}

// Normalize 将模型居中并缩放到单位尺寸
func (m *Mesh) Normalize() {
	lo, hi := m.Bounds()
	center := Vec3{(lo.X + hi.X) / 2, (lo.Y + hi.Y) / 2, (lo.Z + hi.Z) / 2}
	size := math.Max(hi.X-lo.X, math.Max(hi.Y-lo.Y, hi.Z-lo.Z))
	if size == 0 {
		size = 1
	}
	for i, v := range m.Vertices {
		m.Vertices[i] = Vec3{(v.X - center.X) / size, (v.Y - center.Y) / size, (v.Z - center.Z) / size}
	}
}

// parserOptions gwob 的非致命告警写入日志
func parserOptions() *gwob.ObjParserOptions {
	return &gwob.ObjParserOptions{
		Logger: func(msg string) {
			log.Printf("[Viewer] OBJ: %s", msg)
		},
	}
}

// ParseOBJ 解析 OBJ 几何
//
// 三角化和负下标由 gwob 处理；每个 usemtl 分组的面带上该组材质。
func ParseOBJ(r io.Reader) (*Mesh, error) {
	obj, err := gwob.NewObjFromReader("model", bufio.NewReader(r), parserOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to parse OBJ: %w", err)
	}
	return meshFromObj(obj)
}

// meshFromObj 把 gwob 的交错顶点缓冲转换为三角面列表
func meshFromObj(obj *gwob.Obj) (*Mesh, error) {
	m := &Mesh{Materials: make(map[string]color.RGBA), MaterialLib: obj.Mtllib}

	// Stride 和偏移以字节计
	stride := obj.StrideSize / 4
	offset := obj.StrideOffsetPosition / 4
	if stride < 3 || offset+3 > stride {
		return nil, fmt.Errorf("unexpected OBJ vertex layout (stride=%d, position offset=%d)", obj.StrideSize, obj.StrideOffsetPosition)
	}
	count := len(obj.Coord) / stride
	m.Vertices = make([]Vec3, count)
	for i := range m.Vertices {
		c := obj.Coord[i*stride+offset:]
		m.Vertices[i] = Vec3{float64(c[0]), float64(c[1]), float64(c[2])}
	}

	for _, g := range obj.Groups {
		end := g.IndexBegin + g.IndexCount
		if g.IndexBegin < 0 || end > len(obj.Indices) {
			return nil, fmt.Errorf("group %q indices out of range", g.Name)
		}
		idx := obj.Indices[g.IndexBegin:end]
		for k := 0; k+2 < len(idx); k += 3 {
			f := Face{V: [3]int{idx[k], idx[k+1], idx[k+2]}, Material: g.Usemtl}
			for _, v := range f.V {
				if v < 0 || v >= count {
					return nil, fmt.Errorf("group %q: vertex %d out of range (have %d)", g.Name, v, count)
				}
			}
			m.Faces = append(m.Faces, f)
		}
	}
	if len(m.Faces) == 0 {
		return nil, fmt.Errorf("OBJ has no faces")
	}
	return m, nil
}

// ParseMTL 解析材质文件中的漫反射颜色（newmtl + Kd）
func ParseMTL(r io.Reader) (map[string]color.RGBA, error) {
	lib, err := gwob.ReadMaterialLibFromReader(bufio.NewReader(r), parserOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to parse MTL: %w", err)
	}
	out := make(map[string]color.RGBA, len(lib.Lib))
	for name, mat := range lib.Lib {
		out[name] = color.RGBA{R: kdChannel(mat.Kd[0]), G: kdChannel(mat.Kd[1]), B: kdChannel(mat.Kd[2]), A: 255}
	}
	return out, nil
}

// kdChannel 把 [0,1] 的颜色分量转换为 8 位
func kdChannel(f float32) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, float64(f))) * 255))
}

// 程序生成的下颌牙弓：每侧 8 颗牙，#36 为左侧第 6 颗
const (
	archTeethPerSide = 8
	archWidth        = 1.0
	archDepth        = 0.9
	ProceduralTooth  = "tooth-36"
)

// ProceduralArch 生成一个简化的下颌牙弓，患牙 #36 高亮
func ProceduralArch() *Mesh {
	m := &Mesh{Materials: make(map[string]color.RGBA), Highlight: ProceduralTooth}
	total := archTeethPerSide * 2

	for i := 0; i < total; i++ {
		// 沿抛物线从右侧第 8 颗到左侧第 8 颗排列
		t := (float64(i)+0.5)/float64(total)*2 - 1
		x := t * archWidth / 2
		z := archDepth * (t*t - 0.5)

		var name string
		if i < archTeethPerSide {
			name = fmt.Sprintf("tooth-4%d", archTeethPerSide-i)
		} else {
			name = fmt.Sprintf("tooth-3%d", i-archTeethPerSide+1)
		}

		// 磨牙更宽
		pos := archTeethPerSide - i
		if i >= archTeethPerSide {
			pos = i - archTeethPerSide + 1
		}
		half := 0.022 + 0.004*float64(pos)
		addBox(m, Vec3{x, 0, z}, half, 0.06, name)
	}
	return m
}

// addBox 添加一个以 c 为底面中心的长方体
func addBox(m *Mesh, c Vec3, half, height float64, material string) {
	base := len(m.Vertices)
	for _, y := range []float64{c.Y, c.Y + height} {
		m.Vertices = append(m.Vertices,
			Vec3{c.X - half, y, c.Z - half},
			Vec3{c.X + half, y, c.Z - half},
			Vec3{c.X + half, y, c.Z + half},
			Vec3{c.X - half, y, c.Z + half},
		)
	}
	quads := [][4]int{
		{0, 1, 2, 3}, {4, 5, 6, 7},
		{0, 1, 5, 4}, {1, 2, 6, 5},
		{2, 3, 7, 6}, {3, 0, 4, 7},
	}
	for _, q := range quads {
		m.Faces = append(m.Faces,
			Face{V: [3]int{base + q[0], base + q[1], base + q[2]}, Material: material},
			Face{V: [3]int{base + q[0], base + q[2], base + q[3]}, Material: material},
		)
	}
}
