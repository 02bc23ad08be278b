// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/tricolor/input"
	"gopkg.in/yaml.v3"
)

// Step is one scripted event. A missing button decodes as left.
type Step struct {
	Event  string  `yaml:"event"`
	Button Button  `yaml:"button"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Key    Key     `yaml:"key"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
}

// Script is a list of steps:
//
//	steps:
//	  - event: enter
//	  - event: down
//	    button: left
//	  - event: move
//	    x: 400
//	    y: 300
//	  - event: key_up
//	    key: space
//	  - event: render
type Script struct {
	Steps []Step `yaml:"steps"`
}

// DefaultScript reproduces a short interactive session in an 800×600
// window.
func DefaultScript() Script {
	return Script{Steps: []Step{
		{Event: "render"},
		{Event: "enter"},
		{Event: "render"},
		{Event: "down", Button: Button(gpucontext.ButtonLeft)},
		{Event: "move", X: 400, Y: 300},
		{Event: "render"},
		{Event: "key_up", Key: Key(gpucontext.KeySpace)},
		{Event: "render"},
		{Event: "key_down", Key: Key(gpucontext.KeySpace)},
		{Event: "leave"},
		{Event: "render"},
	}}
}

// LoadScript reads a YAML script from path.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes a YAML script and checks every step.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	for i, st := range s.Steps {
		if st.Event == "render" {
			continue
		}
		if _, err := st.Input(); err != nil {
			return Script{}, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return s, nil
}

// Input converts the step to an input event. Render steps have no event.
func (st Step) Input() (input.Event, error) {
	switch st.Event {
	case "enter":
		return pointer(gpucontext.PointerEnter, gpucontext.ButtonNone, st.X, st.Y), nil
	case "leave":
		return pointer(gpucontext.PointerLeave, gpucontext.ButtonNone, st.X, st.Y), nil
	case "down":
		return pointer(gpucontext.PointerDown, gpucontext.Button(st.Button), st.X, st.Y), nil
	case "up":
		return pointer(gpucontext.PointerUp, gpucontext.Button(st.Button), st.X, st.Y), nil
	case "move":
		return pointer(gpucontext.PointerMove, gpucontext.ButtonNone, st.X, st.Y), nil
	case "key_down":
		return input.Key{Key: gpucontext.Key(st.Key), Pressed: true}, nil
	case "key_up":
		return input.Key{Key: gpucontext.Key(st.Key)}, nil
	case "resize":
		if st.Width < 0 || st.Height < 0 {
			return nil, fmt.Errorf("negative size %dx%d", st.Width, st.Height)
		}
		return input.Resize{Width: uint32(st.Width), Height: uint32(st.Height)}, nil
	default:
		return nil, fmt.Errorf("unknown event %q", st.Event)
	}
}

func pointer(typ gpucontext.PointerEventType, b gpucontext.Button, x, y float64) input.Pointer {
	return input.Pointer{PointerEvent: gpucontext.PointerEvent{
		Type:        typ,
		PointerID:   1,
		X:           x,
		Y:           y,
		PointerType: gpucontext.PointerTypeMouse,
		IsPrimary:   true,
		Button:      b,
	}}
}

// Button is a pointer button decoded from its name.
type Button gpucontext.Button

var buttonNames = map[string]gpucontext.Button{
	"left":   gpucontext.ButtonLeft,
	"middle": gpucontext.ButtonMiddle,
	"right":  gpucontext.ButtonRight,
	"x1":     gpucontext.ButtonX1,
	"x2":     gpucontext.ButtonX2,
}

// UnmarshalYAML implements yaml.Unmarshaler for Button.
func (b *Button) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, ok := buttonNames[strings.ToLower(s)]
	if !ok {
		return fmt.Errorf("unknown button %q", s)
	}
	*b = Button(v)
	return nil
}

// Key is a keyboard key decoded from its name.
type Key gpucontext.Key

var keyNames = func() map[string]gpucontext.Key {
	m := map[string]gpucontext.Key{
		"space":     gpucontext.KeySpace,
		"tab":       gpucontext.KeyTab,
		"enter":     gpucontext.KeyEnter,
		"escape":    gpucontext.KeyEscape,
		"backspace": gpucontext.KeyBackspace,
	}
	for c := 'a'; c <= 'z'; c++ {
		m[string(c)] = gpucontext.KeyA + gpucontext.Key(c-'a')
	}
	for c := '0'; c <= '9'; c++ {
		m[string(c)] = gpucontext.Key0 + gpucontext.Key(c-'0')
	}
	return m
}()

// UnmarshalYAML implements yaml.Unmarshaler for Key.
func (k *Key) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, ok := keyNames[strings.ToLower(s)]
	if !ok {
		return fmt.Errorf("unknown key %q", s)
	}
	*k = Key(v)
	return nil
}
