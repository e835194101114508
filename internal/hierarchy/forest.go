// Package hierarchy folds flat category rows into trees.
//
// Rows are kept in an arena (a slice) and linked through an adjacency index
// keyed by parent id. Subtrees are assembled with an explicit worklist, so
// depth is bounded only by memory and a cycle in the stored data is reported
// instead of looping forever.
package hierarchy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Hemantbam/Catalog-management/internal/model"

	"github.com/google/uuid"
)

var (
	ErrUnknownRoot = errors.New("hierarchy: root category not present")
	ErrCycle       = errors.New("hierarchy: cycle in parent links")
)

// Tree is one category together with all of its descendants.
type Tree struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	ParentID *uuid.UUID `json:"parent_id"`
	Children []*Tree    `json:"children"`
}

// Size returns the number of nodes in the tree, root included.
func (t *Tree) Size() int {
	n := 0
	stack := []*Tree{t}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		stack = append(stack, cur.Children...)
	}
	return n
}

// Forest is an immutable index over a set of category rows.
type Forest struct {
	arena    []model.Category
	byID     map[uuid.UUID]int
	children map[uuid.UUID][]int
}

// New builds the index. Duplicate ids keep the first row seen.
func New(rows []model.Category) *Forest {
	f := &Forest{
		arena:    make([]model.Category, 0, len(rows)),
		byID:     make(map[uuid.UUID]int, len(rows)),
		children: make(map[uuid.UUID][]int),
	}
	for _, row := range rows {
		if _, dup := f.byID[row.ID]; dup {
			continue
		}
		f.byID[row.ID] = len(f.arena)
		f.arena = append(f.arena, row)
	}
	for i, row := range f.arena {
		if row.ParentID != nil {
			f.children[*row.ParentID] = append(f.children[*row.ParentID], i)
		}
	}
	for parent, idx := range f.children {
		sort.Slice(idx, func(a, b int) bool { return f.arena[idx[a]].Name < f.arena[idx[b]].Name })
		f.children[parent] = idx
	}
	return f
}

func (f *Forest) Len() int { return len(f.arena) }

func (f *Forest) Contains(id uuid.UUID) bool {
	_, ok := f.byID[id]
	return ok
}

// Roots returns the ids of rows whose parent is absent from the forest,
// ordered by name.
func (f *Forest) Roots() []uuid.UUID {
	var idx []int
	for i, row := range f.arena {
		if row.ParentID == nil || !f.Contains(*row.ParentID) {
			idx = append(idx, i)
		}
	}
	sort.Slice(idx, func(a, b int) bool { return f.arena[idx[a]].Name < f.arena[idx[b]].Name })
	ids := make([]uuid.UUID, len(idx))
	for i, j := range idx {
		ids[i] = f.arena[j].ID
	}
	return ids
}

// Subtree assembles the tree rooted at rootID. Children are ordered by name.
func (f *Forest) Subtree(rootID uuid.UUID) (*Tree, error) {
	pos, ok := f.byID[rootID]
	if !ok {
		return nil, ErrUnknownRoot
	}

	type item struct {
		pos  int
		node *Tree
	}
	root := f.node(pos)
	visited := map[int]bool{pos: true}
	work := []item{{pos: pos, node: root}}

	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]

		for _, child := range f.children[f.arena[cur.pos].ID] {
			if visited[child] {
				return nil, fmt.Errorf("%w: %s", ErrCycle, f.arena[child].ID)
			}
			visited[child] = true
			n := f.node(child)
			cur.node.Children = append(cur.node.Children, n)
			work = append(work, item{pos: child, node: n})
		}
	}
	return root, nil
}

// Descendants returns rootID followed by every id below it, breadth first.
func (f *Forest) Descendants(rootID uuid.UUID) ([]uuid.UUID, error) {
	pos, ok := f.byID[rootID]
	if !ok {
		return nil, ErrUnknownRoot
	}
	visited := map[int]bool{pos: true}
	queue := []int{pos}
	ids := make([]uuid.UUID, 0, len(f.arena))

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		ids = append(ids, f.arena[cur].ID)

		for _, child := range f.children[f.arena[cur].ID] {
			if visited[child] {
				return nil, fmt.Errorf("%w: %s", ErrCycle, f.arena[child].ID)
			}
			visited[child] = true
			queue = append(queue, child)
		}
	}
	return ids, nil
}

func (f *Forest) node(pos int) *Tree {
	row := f.arena[pos]
	return &Tree{ID: row.ID, Name: row.Name, ParentID: row.ParentID, Children: []*Tree{}}
}
