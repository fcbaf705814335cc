package help

import (
	"reflect"
	"testing"

	"github.com/dtnitsch/term-ranker/models"
	"gopkg.in/yaml.v3"
)

func TestConfigTemplateMatchesDefaults(t *testing.T) {
	var cfg models.Config
	if err := yaml.Unmarshal([]byte(ConfigTemplate), &cfg); err != nil {
		t.Fatalf("template is not valid YAML: %v", err)
	}
	if want := models.NewConfig(); !reflect.DeepEqual(&cfg, want) {
		t.Errorf("template = %+v, defaults = %+v", cfg, *want)
	}
}

func TestColdstartYAMLParses(t *testing.T) {
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(ColdstartYAML), &doc); err != nil {
		t.Fatalf("quick start is not valid YAML: %v", err)
	}
	for _, key := range []string{"outputs", "commands", "config"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing section %q", key)
		}
	}
}
