package site

// pageTemplate is the html/template for every documentation page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{if .Title}}{{.Title}} - {{end}}{{.SiteName}}</title>
  {{- with .Description}}
  <meta name="description" content="{{.}}">
  {{- end}}
  <link rel="stylesheet" href="/style.css">
</head>
<body data-path="{{.Route}}">
  <header class="site-header" id="site-header">
    <a class="brand" href="/">{{.SiteName}}</a>
    <div class="search">
      <input type="search" id="search-input" placeholder="Search docs..." autocomplete="off">
      <ul class="search-results" id="search-results"></ul>
    </div>
  </header>
  <div class="layout">
    <aside class="sidebar">
      {{.Sidebar}}
    </aside>
    <main class="content">
      <article>
        {{- if or .Title .Section}}
        <header class="page-header">
          {{- with .Section}}
          <p class="eyebrow">{{.}}</p>
          {{- end}}
          {{- with .Title}}
          <h1>{{.}}</h1>
          {{- end}}
        </header>
        {{- end}}
        <div class="prose">
{{.Content}}
        </div>
      </article>
      {{- with .EditURL}}
      <p class="edit-link"><a href="{{.}}">Edit this page</a></p>
      {{- end}}
      <dl class="pagination">
        {{- with .Previous}}
        <div class="previous">
          <dt>Previous</dt>
          <dd>{{if .Href}}<a href="{{.Href}}"><span aria-hidden="true">&larr;</span> {{.Title}}</a>{{else}}<span aria-hidden="true">&larr;</span> {{.Title}}{{end}}</dd>
        </div>
        {{- end}}
        {{- with .Next}}
        <div class="next">
          <dt>Next</dt>
          <dd>{{if .Href}}<a href="{{.Href}}">{{.Title}} <span aria-hidden="true">&rarr;</span></a>{{else}}{{.Title}} <span aria-hidden="true">&rarr;</span>{{end}}</dd>
        </div>
        {{- end}}
      </dl>
    </main>
    <nav class="toc" aria-labelledby="on-this-page-title">
      {{- if .TOC}}
      <h2 id="on-this-page-title">On this page</h2>
      <ol role="list">
        {{- range .TOC}}
        <li>
          <h3><a href="#{{.ID}}" data-toc-id="{{.ID}}"{{if isActive . $.Current}} class="active"{{end}}>{{.Title}}</a></h3>
          {{- if .Children}}
          <ol role="list">
            {{- range .Children}}
            <li><a href="#{{.ID}}" data-toc-id="{{.ID}}"{{if isActive . $.Current}} class="active"{{end}}>{{.Title}}</a></li>
            {{- end}}
          </ol>
          {{- end}}
        </li>
        {{- end}}
      </ol>
      {{- end}}
    </nav>
  </div>
  <script src="/script.js"></script>
</body>
</html>
`

// cssContent is the stylesheet shared by every page.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-muted: #f8fafc;
  --text: #0f172a;
  --text-muted: #64748b;
  --border: #e2e8f0;
  --accent: #ef4444;
  --header-height: 4.5rem;
}

* { box-sizing: border-box; }

html { scroll-padding-top: var(--header-height); }

body {
  margin: 0;
  background: var(--bg);
  color: var(--text);
  font: 16px/1.6 -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
}

a { color: inherit; }

.site-header {
  position: sticky;
  top: 0;
  z-index: 50;
  display: flex;
  align-items: center;
  justify-content: space-between;
  height: var(--header-height);
  padding: 0 2rem;
  background: var(--bg);
  transition: box-shadow 0.5s, background-color 0.5s;
}

.site-header.scrolled {
  background: rgba(255, 255, 255, 0.95);
  box-shadow: 0 1px 3px rgba(15, 23, 42, 0.08), 0 4px 12px rgba(15, 23, 42, 0.05);
}

.brand { font-weight: 600; text-decoration: none; }

.search { position: relative; }
.search input { width: 16rem; padding: 0.4rem 0.75rem; border: 1px solid var(--border); border-radius: 0.5rem; }
.search-results { position: absolute; right: 0; width: 24rem; margin: 0.25rem 0 0; padding: 0; list-style: none; background: var(--bg); border-radius: 0.5rem; box-shadow: 0 4px 12px rgba(15, 23, 42, 0.12); }
.search-results:empty { display: none; }
.search-results a { display: block; padding: 0.5rem 0.75rem; text-decoration: none; }
.search-results small { display: block; color: var(--text-muted); }

.layout { display: flex; max-width: 90rem; margin: 0 auto; padding: 0 2rem; }

.sidebar, .toc {
  position: sticky;
  top: var(--header-height);
  height: calc(100vh - var(--header-height));
  overflow-y: auto;
  padding: 3rem 0;
  flex: none;
}

.sidebar { width: 17rem; padding-right: 2rem; }
.toc { width: 14rem; padding-left: 2rem; font-size: 0.875rem; }

.nav ul { margin: 0; padding: 0; list-style: none; }
.nav ul ul { padding-left: 1rem; border-left: 1px solid var(--border); }
.nav-section { margin-bottom: 2rem; }
.nav-section h2 { margin: 0 0 0.5rem; font-size: 0.9rem; }
.nav li { margin: 0.35rem 0; color: var(--text-muted); }
.nav a { text-decoration: none; }
.nav a:hover { color: var(--text); }
.nav a.active { color: var(--accent); font-weight: 600; }
.nav .has-children:not(.expanded) > ul { display: none; }
.nav-toggle { cursor: pointer; }

.content { flex: auto; min-width: 0; padding: 3rem 4rem; }
.page-header { margin-bottom: 2.25rem; }
.eyebrow { margin: 0; color: var(--accent); font-size: 0.875rem; font-weight: 500; }
.page-header h1 { margin: 0.25rem 0 0; font-size: 1.875rem; }

.prose h2, .prose h3 { scroll-margin-top: var(--header-height); }
.prose pre { padding: 1rem; overflow-x: auto; border-radius: 0.5rem; background: var(--bg-muted); }
.prose table { border-collapse: collapse; }
.prose th, .prose td { padding: 0.4rem 0.75rem; border: 1px solid var(--border); }

.edit-link { margin-top: 3rem; font-size: 0.875rem; color: var(--text-muted); }

.pagination { display: flex; margin-top: 3rem; padding-top: 1.5rem; border-top: 1px solid var(--border); }
.pagination dt { font-size: 0.875rem; font-weight: 500; }
.pagination dd { margin: 0.25rem 0 0; color: var(--text-muted); font-weight: 600; }
.pagination a { text-decoration: none; }
.pagination .next { margin-left: auto; text-align: right; }

.toc h2 { margin: 0; font-size: 0.875rem; }
.toc ol { margin: 1rem 0 0; padding: 0; list-style: none; }
.toc ol ol { margin-top: 0.5rem; padding-left: 1.25rem; }
.toc li { margin-bottom: 0.75rem; }
.toc h3 { margin: 0; font-size: inherit; font-weight: 500; }
.toc a { color: var(--text-muted); text-decoration: none; }
.toc a.active { color: var(--accent); }

@media (max-width: 80rem) { .toc { display: none; } }
@media (max-width: 64rem) { .sidebar { display: none; } .content { padding: 2rem 0; } }
`

// jsContent wires the page to the live scroll session. It measures the
// heading elements, streams scroll positions over /ws/scroll and applies the
// returned section and header state. Without a server (static hosting) the
// same computation runs in the browser.
const jsContent = `(function () {
  'use strict';

  var header = document.getElementById('site-header');
  var links = Array.prototype.slice.call(document.querySelectorAll('[data-toc-id]'));
  var ids = links.map(function (a) { return a.getAttribute('data-toc-id'); });
  var path = document.body.getAttribute('data-path') || location.pathname;
  var socket = null;
  var live = false;
  var offsets = [];

  function setScrolled(scrolled) {
    header.classList.toggle('scrolled', scrolled);
  }

  function setSection(current) {
    links.forEach(function (a) {
      var li = a.closest('li');
      var active = !!current && li !== null &&
        li.querySelector('[data-toc-id="' + CSS.escape(current) + '"]') !== null;
      a.classList.toggle('active', active);
    });
  }

  function measure() {
    var elements = {};
    ids.forEach(function (id) {
      var el = document.getElementById(id);
      if (!el) { return; }
      var style = window.getComputedStyle(el);
      elements[id] = {
        top: el.getBoundingClientRect().top,
        scroll_margin_top: parseFloat(style.scrollMarginTop) || 0
      };
    });
    return elements;
  }

  function localOffsets(elements) {
    var y = window.scrollY;
    var out = [];
    ids.forEach(function (id) {
      var el = elements[id];
      if (el) { out.push({ id: id, top: y + el.top - el.scroll_margin_top }); }
    });
    return out;
  }

  function localUpdate() {
    var y = window.scrollY;
    setScrolled(y > 0);
    if (offsets.length === 0) { return; }
    var current = offsets[0].id;
    for (var i = 0; i < offsets.length; i++) {
      if (y >= offsets[i].top) { current = offsets[i].id; } else { break; }
    }
    setSection(current);
  }

  function send(msg) {
    if (live && socket.readyState === WebSocket.OPEN) {
      socket.send(JSON.stringify(msg));
      return true;
    }
    return false;
  }

  function remeasure() {
    var elements = measure();
    offsets = localOffsets(elements);
    if (!send({ type: 'measure', scroll_y: window.scrollY, elements: elements })) {
      localUpdate();
    }
  }

  function connect() {
    if (!('WebSocket' in window)) { return; }
    var proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
    try {
      socket = new WebSocket(proto + '//' + location.host + '/ws/scroll');
    } catch (e) {
      return;
    }
    socket.onopen = function () {
      live = true;
      send({ type: 'mount', path: path, scroll_y: window.scrollY, elements: measure() });
    };
    socket.onmessage = function (event) {
      var msg = JSON.parse(event.data);
      if (msg.type === 'state') {
        setSection(msg.section);
        setScrolled(msg.is_scrolled);
      }
    };
    socket.onclose = function () {
      live = false;
      localUpdate();
    };
  }

  var pending = false;
  window.addEventListener('scroll', function () {
    if (pending) { return; }
    pending = true;
    window.requestAnimationFrame(function () {
      pending = false;
      if (!send({ type: 'scroll', scroll_y: window.scrollY })) {
        localUpdate();
      }
    });
  }, { passive: true });

  window.addEventListener('resize', remeasure);
  window.addEventListener('load', remeasure);
  window.addEventListener('beforeunload', function () { send({ type: 'unmount' }); });

  document.querySelectorAll('.nav-toggle').forEach(function (el) {
    el.addEventListener('click', function () {
      el.parentElement.classList.toggle('expanded');
    });
  });

  var searchInput = document.getElementById('search-input');
  var searchResults = document.getElementById('search-results');
  var index = null;

  function renderResults(q) {
    searchResults.innerHTML = '';
    if (!index || q.length < 2) { return; }
    var terms = q.toLowerCase().split(/\s+/).filter(Boolean);
    index.filter(function (entry) {
      var hay = (entry.title + ' ' + entry.description + ' ' + entry.content).toLowerCase();
      return terms.every(function (t) { return hay.indexOf(t) !== -1; });
    }).slice(0, 10).forEach(function (entry) {
      var li = document.createElement('li');
      var a = document.createElement('a');
      a.href = entry.path;
      a.textContent = entry.title;
      if (entry.section) {
        var small = document.createElement('small');
        small.textContent = entry.section;
        a.appendChild(small);
      }
      li.appendChild(a);
      searchResults.appendChild(li);
    });
  }

  if (searchInput) {
    searchInput.addEventListener('input', function () {
      var q = searchInput.value.trim();
      if (index === null) {
        index = [];
        fetch('/search-index.json')
          .then(function (r) { return r.json(); })
          .then(function (data) { index = data; renderResults(searchInput.value.trim()); })
          .catch(function () {});
      }
      renderResults(q);
    });
  }

  offsets = localOffsets(measure());
  localUpdate();
  connect();
})();
`
