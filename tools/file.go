package tools

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

const (
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func attachment(c *gin.Context, displayName, contentType string) {
	escaped := url.QueryEscape(displayName)
	c.Header("Content-Type", contentType)
	c.Header(
		"Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, escaped, escaped),
	)
}

// SendBytes 以附件形式返回内存中的文件内容
func SendBytes(c *gin.Context, data []byte, displayName, contentType string) {
	attachment(c, displayName, contentType)
	c.Data(http.StatusOK, contentType, data)
}
