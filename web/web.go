package web

import (
	"embed"
	"html/template"
)

// TemplatesFS 嵌入的页面模板，随二进制分发，无需外部文件
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// FuncMap 模板函数表
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"fmt_int": FormatInt,
	}
}

// Templates 解析全部嵌入模板（带模板函数），模板名为文件名
func Templates() *template.Template {
	return template.Must(
		template.New("").Funcs(FuncMap()).ParseFS(TemplatesFS, "templates/*.html"),
	)
}
