package web

import (
	"html/template"
	"strconv"
	"time"

	"chat-cloud/controller"
	"chat-cloud/renderers"
)

// PageName ist der Name des Seiten-Templates für gin's c.HTML.
const PageName = "page"

// Templates liefert das Template-Set der Seite.
func Templates() *template.Template {
	return template.Must(template.New(PageName).Funcs(template.FuncMap{
		"ms": func(d time.Duration) string {
			return strconv.FormatInt(d.Milliseconds(), 10)
		},
	}).Parse(pageTemplate))
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Messages word cloud</title>
<style>
body{font-family:sans-serif;margin:24px}
#drop{border:2px dashed #999;border-radius:8px;padding:16px 24px;cursor:pointer}
#drop.active{border-color:#1f77b4;background:#eef5fb}
.error{color:#d62728;font-weight:bold}
.notice{color:#7f7f7f}
.toggle{padding:8px;font-size:2em;float:right}
.scene svg{width:100%;max-width:900px;height:auto}
</style>
</head>
<body>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Notice}}<p class="notice">{{.Notice}}</p>{{end}}
{{if .Loaded}}
<form method="post" action="/toggle">
<button class="toggle" type="submit">{{.ToggleLabel}}</button>
</form>
<form id="reload" method="post" action="/upload" enctype="multipart/form-data">
<input type="file" name="file" accept=".json,application/json" onchange="this.form.submit()">
</form>
<div class="scene">{{.SVG}}</div>
{{if .Scene.HasHover}}
<div id="{{.Scene.Tooltip.ID}}" class="tooltip" style="opacity:0;position:fixed;padding-left:{{.Scene.Tooltip.PaddingLeft}}px;top:{{.Scene.Tooltip.Top}}px;left:{{.Scene.Tooltip.Left}}px;pointer-events:none"></div>
<script>
(function(){
  var tip = document.getElementById({{.Scene.Tooltip.ID}});
  var scene = document.getElementById({{.Scene.ID}});
  if (!tip || !scene) { return; }
  scene.querySelectorAll("[data-tooltip]").forEach(function(g){
    g.addEventListener("mouseover", function(){
      tip.style.transition = "opacity {{ms .Scene.Tooltip.FadeIn}}ms";
      tip.style.opacity = "{{.Scene.Tooltip.Opacity}}";
      var h = document.createElement("h1");
      h.textContent = g.getAttribute("data-tooltip");
      tip.replaceChildren(h);
    });
    g.addEventListener("mouseout", function(){
      tip.style.transition = "opacity {{ms .Scene.Tooltip.FadeOut}}ms";
      tip.style.opacity = "0";
    });
  });
})();
</script>
{{end}}
{{else}}
<form id="upload" method="post" action="/upload" enctype="multipart/form-data">
<div id="drop">
<input id="file" type="file" name="file" accept=".json,application/json" multiple hidden>
<h1>Facebook messages word cloud</h1>
<ol>
<li>Go to facebook &gt; settings &gt; your facebook information &gt; Download your information</li>
<li>At the top of the page, select JSON from the format dropdown</li>
<li>On the right side of the page, click Deselect all.</li>
<li>Select Messages and then click Create file at the top of the page.</li>
<li>Wait for a notification from facebook then download and unzip your data</li>
<li>Click <b>here</b> to open a file browser and navigate to the messages directory</li>
<li>From there open inbox &gt; conversation (name of person(s) and some random characters) &gt; message_1.json</li>
</ol>
</div>
</form>
<script>
(function(){
  var form = document.getElementById("upload");
  var drop = document.getElementById("drop");
  var input = document.getElementById("file");
  drop.addEventListener("click", function(){ input.click(); });
  input.addEventListener("change", function(){ if (input.files.length) { form.submit(); } });
  drop.addEventListener("dragover", function(e){ e.preventDefault(); drop.classList.add("active"); });
  drop.addEventListener("dragleave", function(){ drop.classList.remove("active"); });
  drop.addEventListener("drop", function(e){
    e.preventDefault();
    drop.classList.remove("active");
    if (!e.dataTransfer.files.length) { return; }
    input.files = e.dataTransfer.files;
    form.submit();
  });
})();
</script>
{{end}}
</body>
</html>
`

// PageData ist das Modell des Seiten-Templates.
type PageData struct {
	Loaded      bool
	Error       string
	Notice      string
	ToggleLabel string
	Scene       renderers.Scene
	SVG         template.HTML
}

// NewPageData baut das Template-Modell aus dem Seitenzustand. svg muss von
// Scene.SVG stammen, es wird ungeprüft eingebettet.
func NewPageData(view controller.View, scene renderers.Scene, svg []byte) PageData {
	return PageData{
		Loaded:      view.State == controller.StateLoaded,
		Error:       view.Error,
		Notice:      view.Notice,
		ToggleLabel: view.ToggleLabel,
		Scene:       scene,
		SVG:         template.HTML(svg),
	}
}
