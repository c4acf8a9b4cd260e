package handlers

type ReactionParam struct {
	PostId int64 `query:"post_id" form:"post_id"`
}

type SubmitCommentParam struct {
	PostId          int64  `form:"post_id"`
	Content         string `form:"comment_content"`
	ParentCommentId string `form:"parent_comment_id"`
	AuthorName      string `form:"author_name"`
	AuthorEmail     string `form:"author_email"`
}

type ListCommentParam struct {
	Status string `query:"status"`
}

type CommentStatusParam struct {
	Status string `form:"status"`
}

type EditCommentParam struct {
	Content string `form:"content"`
}
