// Package views 页面视图模型
//
// 先拉取数据再渲染：每个页面聚合网关与本地状态，
// 将纯文本输出写入 io.Writer，校验失败在任何网络调用之前返回。
package views

import (
	"fmt"
	"io"
)

// printf 写入渲染输出，页面渲染不关心写入错误
func printf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}
