package services

import (
	"context"
	"sort"

	"github.com/anonto42/nano-forum/backend/internal/models"
)

// CommentNode is a comment together with its direct replies.
type CommentNode struct {
	models.Comment
	Replies []*CommentNode `json:"replies"`
}

// BuildTree assembles the comments of one post into a forest. Roots and every
// Replies slice are ordered by creation time, then id. The comments are kept
// in an arena keyed by id and linked through a parent -> children index built
// in a single pass. A comment whose parent is missing from the input becomes
// a root.
func BuildTree(comments []models.Comment) []*CommentNode {
	ordered := make([]models.Comment, len(comments))
	copy(ordered, comments)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return ordered[i].ID < ordered[j].ID
	})

	arena := make(map[uint]*CommentNode, len(ordered))
	for _, c := range ordered {
		arena[c.ID] = &CommentNode{Comment: c, Replies: []*CommentNode{}}
	}

	children := make(map[uint][]uint, len(ordered))
	var roots []uint
	for _, c := range ordered {
		if c.ParentID != nil && *c.ParentID != c.ID {
			if _, ok := arena[*c.ParentID]; ok {
				children[*c.ParentID] = append(children[*c.ParentID], c.ID)
				continue
			}
		}
		roots = append(roots, c.ID)
	}

	var attach func(id uint) *CommentNode
	attach = func(id uint) *CommentNode {
		node := arena[id]
		for _, child := range children[id] {
			node.Replies = append(node.Replies, attach(child))
		}
		return node
	}

	forest := make([]*CommentNode, 0, len(roots))
	for _, id := range roots {
		forest = append(forest, attach(id))
	}
	return forest
}

// Flatten walks the forest depth first, parents before their replies.
func Flatten(forest []*CommentNode) []models.Comment {
	var out []models.Comment
	var walk func(nodes []*CommentNode)
	walk = func(nodes []*CommentNode) {
		for _, n := range nodes {
			out = append(out, n.Comment)
			walk(n.Replies)
		}
	}
	walk(forest)
	return out
}

// BuildCommentTree loads the comments of a post and returns them as a forest.
// A post without comments yields an empty forest.
func (s *Service) BuildCommentTree(ctx context.Context, postID uint) ([]*CommentNode, error) {
	if _, err := s.store.Posts.GetPostByID(ctx, postID); err != nil {
		return nil, notFound(err, "post", postID)
	}
	comments, err := s.store.Comments.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return BuildTree(comments), nil
}
