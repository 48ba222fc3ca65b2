package viewtree

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/aptpod/viewmeasure-go/errors"
	"github.com/aptpod/viewmeasure-go/measure"
)

// Sceneは、描画ツリーの初期状態です。
//
// YAMLでは次のように記述します。
//
//	pixel_ratio: 2
//	roots:
//	  - handle: 1
//	    frame: {x: 0, y: 0, width: 800, height: 600}
//	    window: {x: 5, y: 5}
//	    inset: {x: 0, y: 24}
//	    children:
//	      - handle: 42
//	        frame: {x: 10, y: 20, width: 100, height: 50}
type Scene struct {
	// PixelRatioは、0でなければ WithTreePixelRatio として使用されます。
	PixelRatio float64     `yaml:"pixel_ratio"`
	Roots      []SceneView `yaml:"roots"`
}

// SceneViewは、Scene内の1つの要素です。
type SceneView struct {
	Handle   measure.ViewHandle `yaml:"handle"`
	Frame    Frame              `yaml:"frame"`
	Scroll   Point              `yaml:"scroll"`
	Window   Point              `yaml:"window"`
	Inset    Point              `yaml:"inset"`
	Children []SceneView        `yaml:"children"`
}

// LoadSceneは、YAMLで記述されたSceneを読み込み、Treeを生成します。
func LoadScene(r io.Reader, opts ...TreeOption) (*Tree, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("decode scene: %w", err)
	}

	if s.PixelRatio != 0 {
		opts = append([]TreeOption{WithTreePixelRatio(s.PixelRatio)}, opts...)
	}
	t := New(opts...)
	if err := s.Apply(t); err != nil {
		t.Close()
		return nil, err
	}
	return t, nil
}

// Applyは、SceneのすべてのrootをTreeへマウントします。
func (s *Scene) Apply(t *Tree) error {
	for _, root := range s.Roots {
		if err := t.MountRoot(root.Handle, root.Frame, root.Window); err != nil {
			return err
		}
		if root.Inset != (Point{}) {
			if err := t.SetWindowInset(root.Handle, root.Inset); err != nil {
				return err
			}
		}
		if err := root.applyDetails(t); err != nil {
			return err
		}
	}
	return nil
}

func (v *SceneView) applyDetails(t *Tree) error {
	if v.Scroll != (Point{}) {
		if err := t.SetScroll(v.Handle, v.Scroll); err != nil {
			return err
		}
	}
	for _, c := range v.Children {
		if err := t.Mount(c.Handle, v.Handle, c.Frame); err != nil {
			return err
		}
		if err := c.applyDetails(t); err != nil {
			return err
		}
	}
	return nil
}
