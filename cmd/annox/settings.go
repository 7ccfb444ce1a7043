package main

import (
	"os"

	"github.com/phyten/annox/internal/config"
	"github.com/phyten/annox/internal/registry"
	"github.com/phyten/annox/internal/termcolor"
)

// loadSettings は既定値 → 設定ファイル → 環境変数の順でレイヤを重ね、
// 解決済みの設定と発見した設定ファイルのパスを返します。
func loadSettings(explicit string) (config.Settings, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return config.Settings{}, "", err
	}
	if explicit == "" {
		explicit = os.Getenv("ANNOX_CONFIG")
	}
	path, _, err := config.Find(cwd, explicit, os.Getenv("XDG_CONFIG_HOME"), "")
	if err != nil {
		return config.Settings{}, "", err
	}

	var layers []config.Config
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return config.Settings{}, path, err
		}
		layers = append(layers, cfg)
	}
	envCfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		return config.Settings{}, path, err
	}
	layers = append(layers, envCfg)

	return config.Merge(config.Defaults(), layers...), path, nil
}

// colorEnabled は設定値とフラグから実際に色を出すかを決めます。
func colorEnabled(setting, flagValue string) (bool, error) {
	raw := setting
	if flagValue != "" {
		raw = flagValue
	}
	mode, err := termcolor.ParseMode(raw)
	if err != nil {
		return false, err
	}
	if mode == termcolor.ModeAuto {
		mode = termcolor.DetectMode(os.Stdout, termcolor.EnvMap(os.Environ()))
	}
	return mode == termcolor.ModeAlways, nil
}

// styleTable は現世代のスタイルハンドルから種別名→端末スタイルの表を作ります。
func styleTable(reg *registry.Registry) map[string]termcolor.Style {
	styles := make(map[string]termcolor.Style)
	if reg == nil {
		return styles
	}
	for _, k := range reg.Kinds() {
		if h, ok := k.Handle.(*termcolor.Handle); ok {
			styles[k.Name] = h.Style
		}
	}
	return styles
}
