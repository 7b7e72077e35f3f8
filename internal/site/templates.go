package site

// pageTemplate is the Go html/template for each view page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} - {{.ProjectName}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
  <script src="https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"></script>
</head>
<body>
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      <h2 class="project-title">{{.ProjectName}}</h2>
      <input type="text" id="search-input" placeholder="Filter views..." autocomplete="off">
    </div>
    <div class="sidebar-tree" id="sidebar-tree">
      {{.TreeHTML}}
    </div>
  </nav>
  <div class="sidebar-overlay" id="sidebar-overlay"></div>
  <main class="content">
    <div class="top-bar">
      <button class="menu-toggle" id="menu-toggle" aria-label="Toggle sidebar">
        <svg width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <line x1="3" y1="6" x2="21" y2="6"/><line x1="3" y1="12" x2="21" y2="12"/><line x1="3" y1="18" x2="21" y2="18"/>
        </svg>
      </button>
      <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">
        <svg class="sun-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <circle cx="12" cy="12" r="5"/><line x1="12" y1="1" x2="12" y2="3"/><line x1="12" y1="21" x2="12" y2="23"/><line x1="1" y1="12" x2="3" y2="12"/><line x1="21" y1="12" x2="23" y2="12"/>
        </svg>
        <svg class="moon-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <path d="M21 12.79A9 9 0 1 1 11.21 3 7 7 0 0 0 21 12.79z"/>
        </svg>
      </button>
    </div>
    <section class="diagram">
      <pre><code class="language-mermaid">{{.Diagram}}</code></pre>
    </section>
    <article class="page-content">
      {{.Content}}
    </article>
  </main>
  <script src="{{.BasePath}}script.js"></script>
</body>
</html>`

// cssContent is the stylesheet shared by every page.
const cssContent = `/* ============ CSS Variables ============ */
:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --bg-sidebar: #f1f3f5;
  --text: #212529;
  --text-secondary: #495057;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --accent-light: #e7f5ff;
  --code-bg: #f1f3f5;
  --sidebar-width: 280px;
  --content-max-width: 960px;
  --table-stripe: #f8f9fa;
}

[data-theme="dark"] {
  --bg: #1a1b1e;
  --bg-secondary: #25262b;
  --bg-sidebar: #141517;
  --text: #c1c2c5;
  --text-secondary: #a6a7ab;
  --text-muted: #5c5f66;
  --border: #373a40;
  --accent: #4dabf7;
  --accent-light: #1c2a3a;
  --code-bg: #25262b;
  --table-stripe: #1f2024;
}

/* ============ Reset & Base ============ */
*, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.7;
  display: flex;
  min-height: 100vh;
}

/* ============ Sidebar ============ */
.sidebar {
  width: var(--sidebar-width);
  background: var(--bg-sidebar);
  border-right: 1px solid var(--border);
  position: fixed;
  top: 0;
  left: 0;
  bottom: 0;
  overflow-y: auto;
  z-index: 100;
}

.sidebar-header { padding: 20px 16px 12px; border-bottom: 1px solid var(--border); }

.project-title { font-size: 1.1rem; font-weight: 700; color: var(--accent); margin-bottom: 12px; }

#search-input {
  width: 100%;
  padding: 8px 12px;
  border: 1px solid var(--border);
  border-radius: 6px;
  background: var(--bg);
  color: var(--text);
}

.sidebar-tree ul { list-style: none; }
.sidebar-tree ul ul { padding-left: 16px; }
.sidebar-tree .hidden { display: none; }

.sidebar-tree .dir > .dir-toggle {
  display: block;
  padding: 4px 16px;
  font-size: 0.82rem;
  font-weight: 600;
  color: var(--text-secondary);
  cursor: pointer;
}

.sidebar-tree .dir > ul { display: none; }
.sidebar-tree .dir.expanded > ul { display: block; }

.sidebar-tree .file a {
  display: block;
  padding: 3px 16px 3px 22px;
  font-size: 0.82rem;
  color: var(--text-muted);
  text-decoration: none;
}

.sidebar-tree .file a:hover,
.sidebar-tree .file a.active { background: var(--accent-light); color: var(--accent); }

.sidebar-overlay { display: none; position: fixed; inset: 0; background: rgba(0,0,0,0.4); z-index: 99; }
.sidebar-overlay.visible { display: block; }

/* ============ Main Content ============ */
.content { margin-left: var(--sidebar-width); flex: 1; min-width: 0; }

.top-bar {
  display: flex;
  justify-content: flex-end;
  padding: 8px 24px;
  border-bottom: 1px solid var(--border);
}

.menu-toggle { display: none; background: none; border: none; color: var(--text); margin-right: auto; }
.theme-toggle { background: none; border: 1px solid var(--border); border-radius: 6px; color: var(--text); padding: 6px 8px; }

[data-theme="dark"] .moon-icon { display: none; }
[data-theme="light"] .sun-icon { display: none; }

.page-content { max-width: var(--content-max-width); margin: 0 auto; padding: 32px 40px 64px; }
.page-content h1 { font-size: 2rem; margin-bottom: 16px; border-bottom: 2px solid var(--border); }
.page-content h2 { font-size: 1.4rem; margin: 32px 0 12px; border-bottom: 1px solid var(--border); }
.page-content h3 { font-size: 1.1rem; margin: 24px 0 8px; }
.page-content p, .page-content ul { margin-bottom: 12px; }
.page-content ul { padding-left: 24px; }
.page-content a { color: var(--accent); }

/* ============ Code ============ */
.page-content pre { background: var(--code-bg); border-radius: 6px; padding: 12px 16px; overflow-x: auto; margin-bottom: 16px; }
.page-content code { font-family: "SFMono-Regular", Consolas, monospace; font-size: 0.85rem; }

/* ============ Tables ============ */
.page-content table { border-collapse: collapse; width: 100%; margin-bottom: 16px; }
.page-content th, .page-content td { border: 1px solid var(--border); padding: 6px 12px; text-align: left; }
.page-content tr:nth-child(even) { background: var(--table-stripe); }

/* ============ Mermaid Diagrams ============ */
.diagram { max-width: var(--content-max-width); margin: 24px auto 0; padding: 0 40px; }
.diagram .mermaid { background: var(--bg-secondary); border: 1px solid var(--border); border-radius: 8px; padding: 16px; text-align: center; }

/* ============ Responsive ============ */
@media (max-width: 768px) {
  .sidebar { transform: translateX(-100%); transition: transform 0.2s; }
  .sidebar.open { transform: translateX(0); }
  .content { margin-left: 0; }
  .menu-toggle { display: block; }
  .page-content, .diagram { padding-left: 16px; padding-right: 16px; }
}
`

// jsContent handles theming, the sidebar filter and mermaid rendering.
const jsContent = `(function() {
  "use strict";

  var html = document.documentElement;
  var sidebarTree = document.getElementById("sidebar-tree");

  // ===== Mermaid =====
  function renderMermaid() {
    if (typeof mermaid === "undefined") return;
    var dark = html.getAttribute("data-theme") === "dark";
    mermaid.initialize({ startOnLoad: false, theme: dark ? "dark" : "default", securityLevel: "strict" });
    document.querySelectorAll("pre > code.language-mermaid, .mermaid[data-source]").forEach(function(el, idx) {
      var div = el;
      var source = el.getAttribute("data-source");
      if (!source) {
        source = el.textContent;
        div = document.createElement("div");
        div.className = "mermaid";
        div.setAttribute("data-source", source);
        var pre = el.parentElement;
        pre.parentElement.replaceChild(div, pre);
      }
      mermaid.render("mermaid-diagram-" + idx + "-" + Date.now(), source).then(function(result) {
        div.innerHTML = result.svg;
      }).catch(function(err) {
        div.textContent = "Mermaid error: " + err.message;
      });
    });
  }

  // ===== Theme toggle =====
  function setTheme(theme) {
    html.setAttribute("data-theme", theme);
    try { localStorage.setItem("atlas-theme", theme); } catch(e) {}
    renderMermaid();
  }

  var stored = null;
  try { stored = localStorage.getItem("atlas-theme"); } catch(e) {}
  if (stored) {
    html.setAttribute("data-theme", stored);
  } else if (window.matchMedia && window.matchMedia("(prefers-color-scheme: dark)").matches) {
    html.setAttribute("data-theme", "dark");
  }

  var themeToggle = document.getElementById("theme-toggle");
  if (themeToggle) {
    themeToggle.addEventListener("click", function() {
      setTheme(html.getAttribute("data-theme") === "dark" ? "light" : "dark");
    });
  }

  // ===== Sidebar toggle (mobile) =====
  var sidebar = document.getElementById("sidebar");
  var overlay = document.getElementById("sidebar-overlay");
  function toggleSidebar() {
    sidebar.classList.toggle("open");
    overlay.classList.toggle("visible");
  }
  var menuToggle = document.getElementById("menu-toggle");
  if (menuToggle) menuToggle.addEventListener("click", toggleSidebar);
  if (overlay) overlay.addEventListener("click", toggleSidebar);

  document.querySelectorAll(".dir-toggle").forEach(function(toggle) {
    toggle.addEventListener("click", function() {
      this.parentElement.classList.toggle("expanded");
    });
  });

  // ===== Sidebar filter (with search-index.json) =====
  var searchInput = document.getElementById("search-input");
  var searchIndex = [];
  var css = document.querySelector("link[rel=stylesheet]");
  var base = css ? css.getAttribute("href").replace("style.css", "") : "";
  fetch(base + "search-index.json")
    .then(function(r) { return r.json(); })
    .then(function(data) { searchIndex = data || []; })
    .catch(function() { searchIndex = []; });

  if (searchInput && sidebarTree) {
    searchInput.addEventListener("input", function() {
      var query = this.value.toLowerCase().trim();
      var matching = new Set();
      searchIndex.forEach(function(entry) {
        var haystack = (entry.title + " " + entry.summary + " " + entry.content).toLowerCase();
        if (haystack.indexOf(query) !== -1) matching.add(entry.path);
      });
      sidebarTree.querySelectorAll(".file").forEach(function(item) {
        var link = item.querySelector("a");
        if (!link) return;
        var path = link.getAttribute("href").replace(/^(\.\.\/)*/, "");
        var match = query === "" || link.textContent.toLowerCase().indexOf(query) !== -1 || matching.has(path);
        item.classList.toggle("hidden", !match);
      });
    });
  }

  renderMermaid();
})();
`
