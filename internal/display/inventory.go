package display

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-stash/internal/inventory"
	"github.com/pixil98/go-stash/internal/item"
)

const inventoryTemplate = `{{ $h := printf "%s (%d of %d slots used)" (title .Name) .Used .Size }}{{ $h }}
{{ repeat (len $h) "-" }}
{{- range .Items }}
{{ printf "%3d" .Index }}  {{ printf "%-20s" (title .Name | trunc 20) }} {{ .Count }}{{ if .StackLimit }}/{{ .StackLimit }}{{ end }}
{{- else }}
  Nothing
{{- end }}`

var inventoryTmpl = template.Must(template.New("inventory").Funcs(templateFuncs()).Parse(inventoryTemplate))

func templateFuncs() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["title"] = Title
	return funcs
}

type listing struct {
	Name  string
	Used  int
	Size  int
	Items []listingItem
}

type listingItem struct {
	Index      int
	Name       string
	Count      int
	StackLimit int
}

// Inventory renders the occupied slots of inv as a text table.
func Inventory(inv *inventory.Inventory) (string, error) {
	l := listing{
		Name: inv.Name(),
		Used: inv.Size() - inv.EmptySlots(),
		Size: inv.Size(),
	}
	for i, it := range inv.Slots() {
		if it == nil {
			continue
		}
		l.Items = append(l.Items, listingItem{
			Index:      i,
			Name:       it.Name(),
			Count:      it.Count(),
			StackLimit: it.StackLimit(),
		})
	}

	var buf bytes.Buffer
	if err := inventoryTmpl.Execute(&buf, l); err != nil {
		return "", fmt.Errorf("executing inventory template: %w", err)
	}
	return buf.String(), nil
}

// Item renders the name and wrapped description of it.
func Item(it *item.Item) string {
	head := Title(it.Name())
	if it.Description() == "" {
		return head
	}
	return head + "\n" + Wrap(it.Description())
}
