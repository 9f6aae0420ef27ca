package policy

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

// DefaultPolicyName política que se activa si el archivo no indica otra.
const DefaultPolicyName = "por_rol"

type policyFile struct {
	ActivePolicy string                         `mapstructure:"active_policy"`
	Policies     map[string]map[string][]string `mapstructure:"policies"`
}

// Load lee las políticas desde un YAML y devuelve la activa. override (ROLE_POLICY) tiene prioridad
// sobre active_policy. Si el archivo no existe se usa Default(); un estado desconocido es error.
func Load(path, override string) (*Table, error) {
	if path == "" {
		return selectDefault(override)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return selectDefault(override)
		}
		return nil, fmt.Errorf("política de roles: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("política de roles: leer %s: %w", path, err)
	}
	var f policyFile
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("política de roles: formato inválido: %w", err)
	}
	return build(f, override)
}

func selectDefault(override string) (*Table, error) {
	if override != "" && FoldRole(override) != DefaultPolicyName {
		return nil, fmt.Errorf("política de roles %q no existe (sin archivo solo está %q)", override, DefaultPolicyName)
	}
	return Default(), nil
}

func build(f policyFile, override string) (*Table, error) {
	if len(f.Policies) == 0 {
		return nil, fmt.Errorf("política de roles: el archivo no define policies")
	}
	name := strings.ToLower(strings.TrimSpace(override))
	if name == "" {
		name = strings.ToLower(strings.TrimSpace(f.ActivePolicy))
	}
	if name == "" {
		if _, ok := f.Policies[DefaultPolicyName]; ok {
			name = DefaultPolicyName
		} else if len(f.Policies) == 1 {
			for k := range f.Policies {
				name = k
			}
		}
	}
	raw, ok := f.Policies[name]
	if !ok {
		return nil, fmt.Errorf("política de roles %q no existe; disponibles: %s", name, strings.Join(policyNames(f), ", "))
	}

	roles := make(map[string][]entity.Status, len(raw))
	for role, values := range raw {
		statuses := make([]entity.Status, 0, len(values))
		for _, s := range values {
			st, err := entity.ParseStatus(s)
			if err != nil {
				return nil, fmt.Errorf("política %q, rol %q: %w", name, role, err)
			}
			statuses = append(statuses, st)
		}
		roles[role] = statuses
	}
	return NewTable(name, roles), nil
}

func policyNames(f policyFile) []string {
	out := make([]string, 0, len(f.Policies))
	for k := range f.Policies {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
