package infra

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed model.conf
var defaultModel string

//go:embed policy.csv
var defaultPolicy string

// NewEnforcer loads model and policy from disk, or the embedded defaults
// when either path is empty.
func NewEnforcer(modelPath, policyPath string) (*casbin.Enforcer, error) {
	if modelPath != "" && policyPath != "" {
		return casbin.NewEnforcer(modelPath, policyPath)
	}
	return NewEnforcerFromText(defaultModel, defaultPolicy)
}

func NewEnforcerFromText(modelText, policyCSV string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	if err := loadPolicyCSV(e, policyCSV); err != nil {
		return nil, err
	}
	return e, nil
}

func loadPolicyCSV(e *casbin.Enforcer, csv string) error {
	for n, line := range strings.Split(csv, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		params := make([]interface{}, 0, len(fields)-1)
		for _, f := range fields[1:] {
			params = append(params, strings.TrimSpace(f))
		}

		var err error
		switch strings.TrimSpace(fields[0]) {
		case "p":
			_, err = e.AddPolicy(params...)
		case "g":
			_, err = e.AddGroupingPolicy(params...)
		default:
			err = fmt.Errorf("unknown policy type %q", fields[0])
		}
		if err != nil {
			return fmt.Errorf("policy line %d: %w", n+1, err)
		}
	}
	return nil
}
