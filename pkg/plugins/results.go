package plugins

import (
	"context"
	"fmt"

	"github.com/beevik/etree"

	"github.com/yaklabco/plugmod/pkg/config"
	"github.com/yaklabco/plugmod/pkg/ios"
	"github.com/yaklabco/plugmod/pkg/mods"
	"github.com/yaklabco/plugmod/pkg/xmlmerge"
)

func textResults(cfg mods.ModConfig) (string, error) {
	text, ok := cfg.ModResults.(string)
	if !ok {
		return "", fmt.Errorf("%w: want string, got %T", mods.ErrInvalidModResults, cfg.ModResults)
	}
	return text, nil
}

func documentResults(cfg mods.ModConfig) (*etree.Document, error) {
	doc, ok := cfg.ModResults.(*etree.Document)
	if !ok || doc == nil {
		return nil, fmt.Errorf("%w: want *etree.Document, got %T", mods.ErrInvalidModResults, cfg.ModResults)
	}
	return doc, nil
}

func plistResults(cfg mods.ModConfig) (ios.InfoPlist, error) {
	values, ok := cfg.ModResults.(ios.InfoPlist)
	if !ok {
		return nil, fmt.Errorf("%w: want ios.InfoPlist, got %T", mods.ErrInvalidModResults, cfg.ModResults)
	}
	return values, nil
}

// textMod adapts a string transform into a Mod.
func textMod(fn func(src string, cfg mods.ModConfig) (string, error)) mods.Mod {
	return func(_ context.Context, cfg mods.ModConfig) (mods.ModConfig, error) {
		src, err := textResults(cfg)
		if err != nil {
			return cfg, err
		}
		out, err := fn(src, cfg)
		if err != nil {
			return cfg, err
		}
		cfg.ModResults = out
		return cfg, nil
	}
}

// documentMod adapts an in-place document edit into a Mod.
func documentMod(fn func(doc *etree.Document, cfg mods.ModConfig) error) mods.Mod {
	return func(_ context.Context, cfg mods.ModConfig) (mods.ModConfig, error) {
		doc, err := documentResults(cfg)
		if err != nil {
			return cfg, err
		}
		return cfg, fn(doc, cfg)
	}
}

func mergeOptions(project *config.Config) xmlmerge.MergeOptions {
	if project != nil && project.XML.LiteralPolicy == config.LiteralIfAbsent {
		return xmlmerge.MergeOptions{Literal: xmlmerge.LiteralIfAbsent}
	}
	return xmlmerge.MergeOptions{Literal: xmlmerge.LiteralOverwrite}
}
