package config

import "strings"

// Merge layers configuration files over base settings. A layer that carries
// an annotations or languages section replaces the whole list; absent
// sections leave the previous layer in effect.
func Merge(base Settings, layers ...Config) Settings {
	out := base
	for _, layer := range layers {
		if kinds := KindConfigs(layer.Annotations); kinds != nil {
			out.Annotations = kinds
		}
		if descs := Descriptors(layer.Languages); descs != nil {
			out.Languages = descs
		}
		out.Output = ResolveAndTrim(out.Output, layer.UI.Output)
		out.Color = ResolveAndTrim(out.Color, layer.UI.Color)
	}
	if strings.TrimSpace(out.Output) == "" {
		out.Output = "table"
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}

func ResolveString(def string, values ...*string) string {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

func ResolveAndTrim(def string, values ...*string) string {
	return strings.TrimSpace(ResolveString(def, values...))
}
