package termcolor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/annox/internal/colorutil"
)

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

var namedBasic = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

type colorValue struct {
	basic *int
	rgb   *colorutil.RGB
}

// FromPayload は構成ファイル上のスタイル指定（opaque なキー集合）を
// 端末向けの Style に解釈します。端末で表現できないキーは無視されます。
// 背景色だけが指定された場合は読みやすい前景色を自動で補います。
func FromPayload(payload map[string]any, profile Profile) (Style, error) {
	var s Style
	var fg, bg colorValue
	for key, value := range payload {
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "color", "foreground":
			v, err := parseColor(value, key)
			if err != nil {
				return s, err
			}
			fg = v
		case "background", "background_color", "backgroundcolor":
			v, err := parseColor(value, key)
			if err != nil {
				return s, err
			}
			bg = v
		case "bold":
			b, err := payloadBool(value, key)
			if err != nil {
				return s, err
			}
			s.Bold = b
		case "underline":
			b, err := payloadBool(value, key)
			if err != nil {
				return s, err
			}
			s.Underline = b
		case "dim":
			b, err := payloadBool(value, key)
			if err != nil {
				return s, err
			}
			s.Dim = b
		default:
			// editor-only styling (ruler lanes, borders, ...) has no
			// terminal counterpart
		}
	}
	if fg.basic == nil && fg.rgb == nil && bg.rgb != nil {
		auto := colorutil.AutoTextColor(*bg.rgb)
		fg.rgb = &auto
	}
	assign(fg, profile, &s.FGBasic, &s.FG256, &s.FGTrue)
	assign(bg, profile, &s.BGBasic, &s.BG256, &s.BGTrue)
	return s, nil
}

func parseColor(value any, field string) (colorValue, error) {
	raw, ok := value.(string)
	if !ok {
		return colorValue{}, fmt.Errorf("expected color string for %s, got %T", field, value)
	}
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return colorValue{}, nil
	}
	if n, ok := namedBasic[raw]; ok {
		v := n
		return colorValue{basic: &v}, nil
	}
	r, g, b, err := parseHex(raw)
	if err != nil {
		return colorValue{}, fmt.Errorf("%s: %w", field, err)
	}
	return colorValue{rgb: &colorutil.RGB{R: r, G: g, B: b}}, nil
}

func assign(v colorValue, profile Profile, basic **int, idx256 **int, rgbOut **[3]uint8) {
	if v.basic != nil {
		*basic = v.basic
		return
	}
	if v.rgb == nil {
		return
	}
	switch profile {
	case ProfileTrueColor:
		out := [3]uint8{v.rgb.R, v.rgb.G, v.rgb.B}
		*rgbOut = &out
	case ProfileANSI256:
		out := rgbToANSI256(v.rgb.R, v.rgb.G, v.rgb.B)
		*idx256 = &out
	default:
		out := nearestBasic(v.rgb.R, v.rgb.G, v.rgb.B)
		*basic = &out
	}
}

func parseHex(raw string) (uint8, uint8, uint8, error) {
	hex := strings.TrimPrefix(raw, "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return 0, 0, 0, fmt.Errorf("invalid color %q", raw)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q", raw)
	}
	return uint8(n >> 16), uint8(n >> 8 & 0xff), uint8(n & 0xff), nil
}

func payloadBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			return true, nil
		case "0", "false", "no", "off":
			return false, nil
		}
	}
	return false, fmt.Errorf("expected bool for %s, got %v", field, value)
}

var basicRGB = [8][3]uint8{
	{0, 0, 0},       // black
	{205, 49, 49},   // red
	{13, 188, 121},  // green
	{229, 229, 16},  // yellow
	{36, 114, 200},  // blue
	{188, 63, 188},  // magenta
	{17, 168, 205},  // cyan
	{229, 229, 229}, // white
}

func nearestBasic(r, g, b uint8) int {
	best := 0
	bestDist := 1 << 30
	for i, c := range basicRGB {
		dr := int(r) - int(c[0])
		dg := int(g) - int(c[1])
		db := int(b) - int(c[2])
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func rgbToANSI256(r, g, b uint8) int {
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 248 {
			return 231
		}
		return 232 + (int(r)-8)*24/247
	}
	rr := int(r) * 5 / 255
	gg := int(g) * 5 / 255
	bb := int(b) * 5 / 255
	return 16 + 36*rr + 6*gg + bb
}
