package service

import (
	"fmt"
	"strings"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
)

type FrontMatterItem struct {
	Key string
	// Value is nil for keys missing from the front matter.
	Value any
}

// ParseFrontMatterItem reads a KEY:VALUE argument. Only the first colon separates the key.
func ParseFrontMatterItem(s string) (FrontMatterItem, error) {
	key, value, ok := strings.Cut(s, ":")
	if !ok {
		return FrontMatterItem{}, fmt.Errorf("%q: value must be of format key:value", s)
	}
	return FrontMatterItem{Key: strings.TrimSpace(key), Value: strings.TrimSpace(value)}, nil
}

type FrontMatterEdit struct {
	Print    []string
	PrintAll bool
	Set      []FrontMatterItem
	Remove   []string
}

type FrontMatterEditResult struct {
	// Printed holds the requested items as they were before the edit.
	Printed []FrontMatterItem
	Saved   bool
}

type FrontMatterEditor interface {
	Edit(filePath string, edit FrontMatterEdit) (FrontMatterEditResult, error)
}

func NewFrontMatterEditorService(logger applogger.Logger, store FrontMatterStore) FrontMatterEditor {
	return &frontMatterEditor{
		logger: logger,
		store:  store,
	}
}

type frontMatterEditor struct {
	logger applogger.Logger
	store  FrontMatterStore
}

func (service frontMatterEditor) Edit(filePath string, edit FrontMatterEdit) (FrontMatterEditResult, error) {
	original, err := service.store.Load(filePath)
	if err != nil {
		return FrontMatterEditResult{}, err
	}

	var result FrontMatterEditResult
	keys := edit.Print
	if edit.PrintAll {
		keys = original.Keys()
	}
	for _, key := range keys {
		value, _ := original.Get(key)
		result.Printed = append(result.Printed, FrontMatterItem{Key: key, Value: value})
	}

	frontMatter := original.Clone()
	for _, item := range edit.Set {
		frontMatter.Set(item.Key, item.Value)
	}
	for _, key := range edit.Remove {
		frontMatter.Delete(key)
	}
	if frontMatter.Equal(original) {
		return result, nil
	}

	if err = service.store.Save(filePath, frontMatter); err != nil {
		return FrontMatterEditResult{}, err
	}
	service.logger.Info(fmt.Sprintf("updated front matter of %v", filePath))
	result.Saved = true
	return result, nil
}
