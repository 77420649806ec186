package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/focuskit/pkg/dom"
	fkerrors "github.com/odvcencio/focuskit/pkg/errors"
	"github.com/odvcencio/focuskit/pkg/focus"
	"github.com/odvcencio/focuskit/pkg/grouper"
	"github.com/odvcencio/focuskit/pkg/query"
)

// Layout describes the demo document tree in YAML.
type Layout struct {
	Title string     `yaml:"title"`
	Nodes []NodeSpec `yaml:"nodes"`
}

// NodeSpec describes one element.
type NodeSpec struct {
	ID         string     `yaml:"id"`
	Tag        string     `yaml:"tag"`
	Label      string     `yaml:"label"`
	TabIndex   *int       `yaml:"tabindex"`
	Rect       *RectSpec  `yaml:"rect"`
	Hidden     bool       `yaml:"hidden"`
	Scrollable bool       `yaml:"scrollable"`
	Default    bool       `yaml:"default"`
	Root       bool       `yaml:"root"`
	Modalizer  string     `yaml:"modalizer"`
	Grouper    *GroupSpec `yaml:"grouper"`
	Children   []NodeSpec `yaml:"children"`
}

// RectSpec is an element rectangle.
type RectSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// GroupSpec declares a grouper on the node.
type GroupSpec struct {
	Limited   bool   `yaml:"limited"`
	Direction string `yaml:"direction"`
}

// LoadLayout reads and parses a layout file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fkerrors.Wrap(err, fkerrors.ErrCodeConfigLoad, "reading layout").
			WithContext("path", path)
	}
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fkerrors.Wrap(err, fkerrors.ErrCodeConfigParse, "parsing layout").
			WithContext("path", path)
	}
	if len(l.Nodes) == 0 {
		return nil, fkerrors.New(fkerrors.ErrCodeConfigInvalid, "layout has no nodes")
	}
	return &l, nil
}

// Build populates the manager's document from the layout, registering
// groupers, roots, and modalizers as it goes. Existing children of the
// body are removed first so a layout can be rebuilt in place.
func Build(l *Layout, mgr *focus.Manager) error {
	body := mgr.Document().Body()
	for len(body.Children()) > 0 {
		body.RemoveChild(body.Children()[0])
	}
	for i := range l.Nodes {
		if err := buildNode(&l.Nodes[i], body, mgr, nil); err != nil {
			return err
		}
	}
	return nil
}

func buildNode(spec *NodeSpec, parent *dom.Element, mgr *focus.Manager, rootEl *dom.Element) error {
	tag := spec.Tag
	if tag == "" {
		tag = "div"
	}
	el := dom.NewElementWithID(tag, spec.ID)
	parent.AppendChild(el)

	if spec.TabIndex != nil {
		el.SetAttribute(dom.AttrTabIndex, strconv.Itoa(*spec.TabIndex))
	}
	if spec.Rect != nil {
		el.SetRect(dom.NewRect(spec.Rect.X, spec.Rect.Y, spec.Rect.W, spec.Rect.H))
	}
	el.SetHidden(spec.Hidden)
	el.SetScrollable(spec.Scrollable)
	if spec.Label != "" {
		el.SetAttribute(attrLabel, spec.Label)
	}
	if spec.Default {
		el.SetAttribute(query.AttrDefault, "true")
	}

	if spec.Root {
		mgr.Roots().CreateRoot(el)
		rootEl = el
	}
	if spec.Modalizer != "" {
		if rootEl == nil {
			return fkerrors.New(fkerrors.ErrCodeConfigInvalid, "modalizer outside any root").
				WithContext("id", spec.ID)
		}
		root := mgr.Roots().RootForElement(rootEl)
		root.AddModalizer(spec.Modalizer, el)
	}
	if spec.Grouper != nil {
		dir, err := parseDirection(spec.Grouper.Direction)
		if err != nil {
			return err
		}
		mgr.Groupers().Create(el, grouper.BasicProps{
			IsLimited:     spec.Grouper.Limited,
			NextDirection: dir,
		})
	}

	for i := range spec.Children {
		if err := buildNode(&spec.Children[i], el, mgr, rootEl); err != nil {
			return err
		}
	}
	return nil
}

func parseDirection(s string) (grouper.Direction, error) {
	switch s {
	case "", "both":
		return grouper.DirectionBoth, nil
	case "vertical":
		return grouper.DirectionVertical, nil
	case "horizontal":
		return grouper.DirectionHorizontal, nil
	}
	return 0, fkerrors.New(fkerrors.ErrCodeConfigInvalid,
		fmt.Sprintf("unknown grouper direction %q", s))
}
