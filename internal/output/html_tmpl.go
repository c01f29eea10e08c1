package output

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="description" content="{{.Description}}">
<title>{{.Title}}</title>
<style>
:root { --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6; --muted: #6c757d; }
* { box-sizing: border-box; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 1rem; max-width: 1200px; margin: 0 auto; }
header p { color: var(--muted); font-size: .875rem; margin: 0; }
.layout { display: grid; grid-template-columns: 3fr 1fr; gap: 1rem; }
@media (max-width: 768px) { .layout { grid-template-columns: 1fr; } }
.cv-map { width: 100%; height: auto; border: 1px solid var(--border); border-radius: 8px; }
.cv-map .cv-polls path:hover, .cv-map .cv-polls path.cv-selected { stroke: navy; stroke-width: 1.5; stroke-opacity: .8; fill-opacity: .6; }
.cv-riding-label text { font-size: 11px; font-weight: 600; pointer-events: none; }
.info, .legend { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: .75rem; margin-bottom: 1rem; font-size: .8125rem; white-space: pre-line; }
.legend i { display: inline-block; width: 2em; height: 1em; margin-right: .5em; vertical-align: middle; }
.cv-instruction { color: var(--muted); }
h4.cv-riding-name { cursor: pointer; margin-bottom: .25rem; }
h4.cv-riding-name:hover { text-decoration: underline; }
table { width: 100%; border-collapse: collapse; font-size: .8125rem; margin-bottom: 1.5rem; }
th, td { padding: .375rem .625rem; text-align: left; border-bottom: 1px solid var(--border); }
td.num, th.num { text-align: right; }
tr:nth-child(even) { background: var(--card-bg); }
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
<p>{{.Description}}. Parties: {{.Parties}}.{{if .EmptyPolls}} {{.EmptyPolls}} of {{.Polls}} polls recorded no votes.{{end}}</p>
<p>Generated {{.GeneratedAt}}</p>
</header>
<div class="layout">
<div id="cv_map">{{.Map}}</div>
<aside>
<div class="info" id="cv_info"><strong>{{.Idle.Title}}</strong>
{{range .Idle.Lines}}{{.}}{{end}}</div>
<div class="legend">{{range .Legend}}<i style="background: {{.Color}}"></i>{{.Label}}
{{end}}</div>
</aside>
</div>
<div id="cv_riding_data_table">
{{range .Tables}}<h4 class="cv-riding-name" data-riding="{{.RidingID}}"{{with .ViewBox}} data-viewbox="{{.}}"{{end}}>{{.Title}}</h4>
<table>
<thead><tr>{{range .Columns}}<th{{if .Numeric}} class="num"{{end}}>{{.Header}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
{{end}}</div>
<script>
(function () {
  var info = document.getElementById("cv_info");
  var idle = info.innerHTML;
  var active = null, selected = {};
  function polls(riding) {
    return document.querySelectorAll('.cv-polls path[data-riding="' + riding + '"]');
  }
  function show(path) {
    document.querySelectorAll(".cv-polls path.cv-selected").forEach(function (p) { p.classList.remove("cv-selected"); });
    path.classList.add("cv-selected");
    info.textContent = path.querySelector("title").textContent + "\n\npress TAB to cycle through polls";
  }
  document.querySelectorAll(".cv-polls path").forEach(function (path) {
    path.addEventListener("mouseover", function () {
      active = path.dataset.riding;
      selected[active] = Number(path.dataset.index);
      show(path);
    });
    path.addEventListener("mouseout", function () {
      active = null;
      path.classList.remove("cv-selected");
      info.innerHTML = idle;
    });
  });
  window.addEventListener("keydown", function (e) {
    if (e.key !== "Tab") { return; }
    e.preventDefault();
    if (active === null) { return; }
    var list = polls(active);
    if (list.length === 0) { return; }
    selected[active] = ((selected[active] === undefined ? -1 : selected[active]) + 1) % list.length;
    show(list[selected[active]]);
  });
  var svg = document.querySelector("#cv_map svg");
  var full = svg.getAttribute("viewBox");
  svg.addEventListener("dblclick", function () { svg.setAttribute("viewBox", full); });
  document.querySelectorAll("h4.cv-riding-name").forEach(function (h) {
    h.addEventListener("click", function () {
      if (h.dataset.viewbox) { svg.setAttribute("viewBox", h.dataset.viewbox); }
      document.getElementById("cv_map").scrollIntoView();
    });
  });
})();
</script>
</body>
</html>
`
