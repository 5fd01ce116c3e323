package elements

// Custom renders an operator-authored section. Background images are
// painted by the wrapper; left and right images sit beside the content.
const Custom = `
{{define "custom"}}{{with .Section.Custom}}{{$img := and .Image (ne .ImagePosition "background")}}
<div class="container custom custom-image-{{.ImagePosition}}">
{{- if and $img (eq .ImagePosition "left")}}<img class="custom-image" src="{{.Image}}" alt="" loading="lazy">{{end}}
<div class="custom-content">
{{- with .Title}}<h2>{{.}}</h2>{{end}}
{{$.Section.ContentHTML}}
</div>
{{- if and $img (eq .ImagePosition "right")}}<img class="custom-image" src="{{.Image}}" alt="" loading="lazy">{{end}}
</div>{{end}}{{end}}
`
