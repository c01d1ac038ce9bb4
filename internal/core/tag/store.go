// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import "context"

type Repository interface {
	ListTags(context context.Context, filter Filter, limit, offset int) ([]*Tag, int, error)
	GetTag(context context.Context, id int64) (*Tag, error)
	CreateTag(context context.Context, tag *Tag) error
	UpdateTag(context context.Context, tag *Tag) error
	DeleteTag(context context.Context, id int64) error
}
