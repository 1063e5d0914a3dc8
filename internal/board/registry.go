package board

import "fmt"

// Registry - страницы со списками по имени ("today", "upcoming")
type Registry struct {
	boards map[string]*Board
	order  []string
}

func NewRegistry(boards ...*Board) *Registry {
	r := &Registry{boards: make(map[string]*Board, len(boards))}
	for _, b := range boards {
		name := b.Config().Name
		if _, dup := r.boards[name]; !dup {
			r.order = append(r.order, name)
		}
		r.boards[name] = b
	}
	return r
}

func (r *Registry) Get(name string) (*Board, error) {
	b, ok := r.boards[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownList, name)
	}
	return b, nil
}

// Lists возвращает конфигурации в порядке регистрации
func (r *Registry) Lists() []ListConfig {
	out := make([]ListConfig, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.boards[name].Config())
	}
	return out
}
