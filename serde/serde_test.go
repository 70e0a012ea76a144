package serde_test

import (
	"fmt"
	"strconv"

	"github.com/get-eventually/go-serde-shims/serde"
)

type color uint8

const (
	colorRed color = iota + 1
	colorGreen
	colorBlue
)

type paint struct {
	Color color
	Liters int64
}

type paintJSON struct {
	Color  string `json:"color"`
	Liters int64  `json:"liters"`
}

func serializePaint(p paint) (*paintJSON, error) {
	out := &paintJSON{Color: "", Liters: p.Liters}

	switch p.Color {
	case colorRed:
		out.Color = "red"
	case colorGreen:
		out.Color = "green"
	case colorBlue:
		out.Color = "blue"
	default:
		return nil, fmt.Errorf("failed to serialize paint, unexpected color, %v", p.Color)
	}

	return out, nil
}

func deserializePaint(src *paintJSON) (paint, error) {
	out := paint{Color: 0, Liters: src.Liters}

	switch src.Color {
	case "red":
		out.Color = colorRed
	case "green":
		out.Color = colorGreen
	case "blue":
		out.Color = colorBlue
	default:
		return paint{}, serde.Invalid("serde_test.color", src.Color, "invalid color %q for serde_test.color", src.Color)
	}

	return out, nil
}

var paintSerde = serde.Fuse[paint, *paintJSON](
	serde.AsSerializerFunc(serializePaint),
	serde.AsDeserializerFunc(deserializePaint),
)

var quantitySerde = serde.Fuse[int64, string](
	serde.AsInfallibleSerializerFunc(func(i int64) string { return strconv.FormatInt(i, 10) }),
	serde.AsDeserializerFunc(func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }),
)
