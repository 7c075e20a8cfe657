package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileKeywordPattern struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// fileRules mirrors Rules in YAML. Absent sections keep the defaults;
// sequences replace the default table wholesale and keep their file order.
type fileRules struct {
	DefaultCategory  string               `yaml:"default_category"`
	Categories       []Category           `yaml:"categories"`
	KeywordPatterns  []fileKeywordPattern `yaml:"keyword_patterns"`
	SystemMessages   []string             `yaml:"system_messages"`
	AutoReplyLabels  []string             `yaml:"auto_reply_labels"`
	FormLabels       []string             `yaml:"form_labels"`
	PromotionPhrases []string             `yaml:"promotion_phrases"`
}

// Load reads a rules override file. An empty path returns the defaults.
func Load(path string) (*Rules, error) {
	r := Default()
	if path == "" {
		return r, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	if err := r.apply(data); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	return r, nil
}

func (r *Rules) apply(data []byte) error {
	var f fileRules
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}

	if f.DefaultCategory != "" {
		r.DefaultCategory = f.DefaultCategory
	}
	if f.Categories != nil {
		for i, c := range f.Categories {
			if c.Name == "" {
				return fmt.Errorf("category %d has no name", i)
			}
		}
		r.Categories = f.Categories
	}
	if f.KeywordPatterns != nil {
		src := make([][2]string, len(f.KeywordPatterns))
		for i, p := range f.KeywordPatterns {
			src[i] = [2]string{p.Name, p.Pattern}
		}
		patterns, err := compilePatterns(src)
		if err != nil {
			return err
		}
		r.KeywordPatterns = patterns
	}
	if f.SystemMessages != nil {
		r.SystemMessages = f.SystemMessages
	}
	if f.AutoReplyLabels != nil {
		r.AutoReplyLabels = f.AutoReplyLabels
	}
	if f.FormLabels != nil {
		r.FormLabels = f.FormLabels
	}
	if f.PromotionPhrases != nil {
		r.PromotionPhrases = f.PromotionPhrases
	}
	return nil
}
