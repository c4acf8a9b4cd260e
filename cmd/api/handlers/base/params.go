package base

import (
	"strings"

	"github.com/cloudwego/hertz/pkg/app"

	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/utils"
)

// PathID reads a positive id from a route parameter.
func PathID(c *app.RequestContext, name string) (int64, error) {
	return positiveID(c.Param(name))
}

// FormID reads a positive id from the query string or form body.
func FormID(c *app.RequestContext, name string) (int64, error) {
	v, ok := c.GetPostForm(name)
	if !ok {
		v = c.Query(name)
	}
	return positiveID(v)
}

func positiveID(v string) (int64, error) {
	id, err := utils.ConvertStringToInt64(v)
	if err != nil || id <= 0 {
		return 0, errno.ParamErr
	}
	return id, nil
}

// Page reads page_num (or page) and page_size, clamped to sane values.
func Page(c *app.RequestContext) (int64, int64) {
	num := c.Query("page_num")
	if num == "" {
		num = c.Query("page")
	}
	pageNum, _ := utils.ConvertStringToInt64(num)
	pageSize, _ := utils.ConvertStringToInt64(c.Query("page_size"))
	return utils.NormalizePage(pageNum, pageSize)
}

// IDList parses a comma separated list of ids, skipping blanks.
func IDList(v string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(v, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		id, err := positiveID(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// WantsJSON reports whether the caller is a script rather than a plain form
// submit.
func WantsJSON(c *app.RequestContext) bool {
	if strings.EqualFold(string(c.GetHeader("X-Requested-With")), "XMLHttpRequest") {
		return true
	}
	return strings.Contains(string(c.GetHeader("Accept")), "application/json")
}
