// Package thread turns the flat, oldest-first comment list of one content
// item into a reply forest and back.
package thread

import "lirivelle/internal/models"

// Node is one comment and its direct replies, oldest first.
type Node struct {
	Comment  models.Comment `json:"comment"`
	Children []*Node        `json:"children"`
}

// Nest builds the reply forest. Roots and children keep the relative order of
// comments in the input. A comment whose parent is not in the input, or that
// sits on a parent loop, becomes a root and is passed to onOrphan
// when it is non-nil.
func Nest(comments []models.Comment, onOrphan func(models.Comment)) []*Node {
	byID := make(map[uint]*Node, len(comments))
	nodes := make([]*Node, len(comments))
	for i := range comments {
		n := &Node{Comment: comments[i], Children: []*Node{}}
		nodes[i] = n
		byID[n.Comment.ID] = n
	}

	cyclic := inCycles(nodes, byID)
	roots := []*Node{}
	for _, n := range nodes {
		pid := n.Comment.ParentID
		if pid == nil {
			roots = append(roots, n)
			continue
		}
		parent, ok := byID[*pid]
		if !ok || cyclic[n.Comment.ID] {
			if onOrphan != nil {
				onOrphan(n.Comment)
			}
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}
	return roots
}

// inCycles returns the ids whose parent chain leads back to themselves. Each
// node is walked once.
func inCycles(nodes []*Node, byID map[uint]*Node) map[uint]bool {
	const (
		onPath = iota + 1
		done
	)
	state := make(map[uint]int, len(nodes))
	cyclic := map[uint]bool{}
	var path []uint
	for _, start := range nodes {
		path = path[:0]
		for cur := start; ; {
			id := cur.Comment.ID
			if state[id] == done {
				break
			}
			if state[id] == onPath {
				for i := len(path) - 1; i >= 0; i-- {
					cyclic[path[i]] = true
					if path[i] == id {
						break
					}
				}
				break
			}
			state[id] = onPath
			path = append(path, id)
			if cur.Comment.ParentID == nil {
				break
			}
			parent, ok := byID[*cur.Comment.ParentID]
			if !ok {
				break
			}
			cur = parent
		}
		for _, id := range path {
			state[id] = done
		}
	}
	return cyclic
}

// Flatten lists the forest in pre-order: each comment is followed by its
// replies before the next sibling.
func Flatten(forest []*Node) []models.Comment {
	out := make([]models.Comment, 0, Count(forest))
	var walk func([]*Node)
	walk = func(ns []*Node) {
		for _, n := range ns {
			out = append(out, n.Comment)
			walk(n.Children)
		}
	}
	walk(forest)
	return out
}

func Count(forest []*Node) int {
	total := 0
	for _, n := range forest {
		total += 1 + Count(n.Children)
	}
	return total
}

// Find returns the node holding comment id, or nil.
func Find(forest []*Node, id uint) *Node {
	for _, n := range forest {
		if n.Comment.ID == id {
			return n
		}
		if found := Find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// Insert adds a freshly created comment as the last reply of its parent, or
// as the last root when it has no parent or the parent is not in the forest.
func Insert(forest []*Node, c models.Comment) []*Node {
	n := &Node{Comment: c, Children: []*Node{}}
	if c.ParentID != nil {
		if parent := Find(forest, *c.ParentID); parent != nil {
			parent.Children = append(parent.Children, n)
			return forest
		}
	}
	return append(forest, n)
}

// Remove drops the subtree rooted at id and returns the ids it held, root
// first. The forest is returned unchanged when id is absent.
func Remove(forest []*Node, id uint) ([]*Node, []uint) {
	for i, n := range forest {
		if n.Comment.ID == id {
			removed := make([]uint, 0, 1+Count(n.Children))
			for _, c := range Flatten([]*Node{n}) {
				removed = append(removed, c.ID)
			}
			rest := make([]*Node, 0, len(forest)-1)
			rest = append(rest, forest[:i]...)
			rest = append(rest, forest[i+1:]...)
			return rest, removed
		}
		if children, removed := Remove(n.Children, id); removed != nil {
			n.Children = children
			return forest, removed
		}
	}
	return forest, nil
}
