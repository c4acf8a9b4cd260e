package service

import (
	"bytes"
	"html/template"

	"BlogSphere.com/cmd/model"
	"BlogSphere.com/pkg/constants"
	"BlogSphere.com/pkg/utils"
)

var commentTmpl = template.Must(template.New("comment").Parse(
	`<div class="comment" id="comment-{{.Id}}" data-post-id="{{.PostId}}"{{if .ParentId}} data-parent-id="{{.ParentId}}"{{end}}>` +
		`<img class="avatar" src="{{.Avatar}}" alt="">` +
		`<div class="comment-body"><span class="comment-author">{{.Author}}</span>` +
		`<time datetime="{{.ISOTime}}">{{.Time}}</time>` +
		`<p class="comment-content">{{.Content}}</p></div></div>`))

// RenderCommentHTML renders the snippet inserted into the page after a
// comment is posted. Author and content are escaped.
func RenderCommentHTML(comment *model.Comment) (string, error) {
	data := struct {
		Id       int64
		PostId   int64
		ParentId int64
		Avatar   string
		Author   string
		ISOTime  string
		Time     string
		Content  string
	}{
		Id:      comment.CommentId,
		PostId:  comment.PostId,
		Avatar:  utils.GravatarURL(comment.AuthorEmail, 48),
		Author:  comment.AuthorName,
		ISOTime: comment.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Time:    comment.CreatedAt.Format(constants.DataFormate),
		Content: comment.Content,
	}
	if comment.ParentCommentId != nil {
		data.ParentId = *comment.ParentCommentId
	}

	var buf bytes.Buffer
	if err := commentTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
