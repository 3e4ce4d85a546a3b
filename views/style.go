package views

const stylesheet = `
:root{--ink:#f5f0e6;--muted:#a8a29e;--accent:#d97706;--bg:#0c0a09;--panel:rgba(28,25,23,.82)}
*{box-sizing:border-box}
body{margin:0;background:var(--bg);color:var(--ink);font-family:Georgia,"Times New Roman",serif;min-height:100vh}
.deck{position:relative;min-height:100vh;display:flex;flex-direction:column}
.slide{position:relative;flex:1;display:flex;flex-direction:column;justify-content:center;padding:4rem 6vw;overflow:hidden}
.slide-bg{position:absolute;inset:0;width:100%;height:100%;object-fit:cover;opacity:.28;z-index:0}
.slide-body{position:relative;z-index:1;max-width:1200px;margin:0 auto;width:100%}
.slide-note{position:relative;z-index:1;text-align:center;color:var(--muted);margin-top:2rem;font-size:.9rem}
h1,h2,h3{font-weight:400;margin:.2em 0}
.title-main{font-size:clamp(2.5rem,6vw,5rem);text-align:center}
.title-sub,.title-details,.title-byline{text-align:center;color:var(--muted)}
.title-byline span{display:block}
.slide-title{font-size:2.4rem}
.slide-subtitle{color:var(--accent);letter-spacing:.08em;text-transform:uppercase;font-size:.85rem}
.split-layout{display:grid;grid-template-columns:1fr 1fr;gap:3rem;align-items:center}
.split-points{list-style:none;padding:0}
.split-points li::before{content:"\2666  ";color:var(--accent)}
.split-image img{width:100%;border-radius:4px}
.cards-grid,.icons-grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(220px,1fr));gap:1.5rem;margin-top:2rem}
.card,.grid-item{background:var(--panel);padding:1.5rem;border:1px solid rgba(255,255,255,.08);border-radius:6px}
.card-caption,.item-subtitle{color:var(--accent);font-size:.8rem;text-transform:uppercase}
.icon{color:var(--accent)}
.balance{display:flex;align-items:center;justify-content:center;gap:2rem;margin:2rem 0}
.pan{flex:1;background:var(--panel);padding:1.5rem;text-align:center;border-radius:6px}
.fulcrum{font-size:3rem;color:var(--accent)}
.balance-message{border-left:3px solid var(--accent);padding-left:1rem}
.diagram{display:grid;grid-template-columns:1fr auto 1fr;gap:2rem;align-items:center;margin:2rem 0}
.diagram .label{display:block;color:var(--muted);font-size:.8rem;text-transform:uppercase}
.diagram-spiral{text-align:center;color:var(--accent)}
.layers{display:grid;gap:.5rem}
.layer-name{margin-right:.5rem}
.script{width:100%;border-collapse:collapse;margin-top:1.5rem;font-size:.95rem}
.script th,.script td{border-bottom:1px solid rgba(255,255,255,.12);padding:.6rem;text-align:left;vertical-align:top}
.monologue{font-style:italic;color:var(--accent)}
.conclusion{text-align:center}
.conclusion-subtitle{font-size:3rem}
.conclusion-metaphor{font-style:italic;font-size:1.4rem}
.fin{margin-top:3rem;letter-spacing:.3em}
.chrome{display:flex;align-items:center;justify-content:space-between;gap:1rem;padding:.75rem 1.5rem;background:var(--panel)}
.chrome form{display:inline}
button{background:none;border:1px solid var(--muted);color:var(--ink);padding:.4rem 1rem;cursor:pointer;font:inherit}
button:disabled{opacity:.3;cursor:not-allowed}
.progress{height:3px;background:rgba(255,255,255,.1)}
.progress-bar{height:100%;background:var(--accent)}
.deck-footer{text-align:center;color:var(--muted);font-size:.8rem;padding:.5rem}
.export-toolbar{position:sticky;top:0;z-index:10}
.export-slide{min-height:100vh;page-break-after:always;break-after:page}
.panel{max-width:640px;margin:10vh auto;background:var(--panel);padding:2rem;border-radius:6px}
.panel table{width:100%;border-collapse:collapse}
.panel td,.panel th{padding:.3rem;text-align:left;border-bottom:1px solid rgba(255,255,255,.1)}
.error{color:#f87171}
@media print{.chrome,.export-toolbar,.progress{display:none!important}.slide-bg{opacity:.2}body{background:#0c0a09;-webkit-print-color-adjust:exact;print-color-adjust:exact}}
@media (max-width:800px){.split-layout,.diagram{grid-template-columns:1fr}}
`

// controlScript forwards key presses to the input endpoint when the viewer
// may drive the deck.
const controlScript = `
(function(){
  var meta = document.querySelector('meta[name="csrf-token"]');
  var token = meta ? meta.content : "";
  var keys = ["ArrowRight","ArrowLeft"," ","Home","End"];
  function send(body){
    fetch("/input/", {method:"POST", credentials:"same-origin",
      headers:{"X-CSRF-Token":token,"Content-Type":"application/x-www-form-urlencoded","Accept":"application/json"},
      body:new URLSearchParams(body)}).then(function(r){ if (r.ok) location.reload(); });
  }
  document.addEventListener("keydown", function(e){
    if (e.target && (e.target.tagName === "INPUT" || e.target.tagName === "TEXTAREA")) return;
    if (keys.indexOf(e.key) < 0) return;
    e.preventDefault();
    send({key:e.key});
  });
})();
`

// followScript reloads the page whenever the shared presentation moves.
const followScript = `
(function(){
  var body = document.body;
  var seen = [body.dataset.position, body.dataset.mode, body.dataset.revision].join("/");
  var delay = 1000;
  function connect(){
    var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
    ws.onopen = function(){ delay = 1000; };
    ws.onmessage = function(m){
      var s = JSON.parse(m.data);
      if ([s.position, s.mode, s.revision].join("/") !== seen) location.reload();
    };
    ws.onclose = function(){ setTimeout(connect, delay); delay = Math.min(delay * 2, 30000); };
  }
  connect();
})();
`
