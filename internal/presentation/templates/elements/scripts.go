package elements

// Scripts wires the browser side: scroll progress for parallax layers,
// counter visibility reports over the counter socket, consent buttons and
// the contact form.
const Scripts = `
{{define "scripts"}}<script>
(function(){
var tenant={{.TenantID}};
var api=function(path,body){return fetch(path+(path.indexOf('?')<0?'?':'&')+'tenantId='+encodeURIComponent(tenant),{method:'POST',credentials:'same-origin',headers:{'Content-Type':'application/json'},body:JSON.stringify(body||{})});};

var root=document.documentElement;
var onScroll=function(){var max=root.scrollHeight-root.clientHeight;root.style.setProperty('--scroll-progress',max>0?Math.min(1,Math.max(0,root.scrollTop/max)):0);};
window.addEventListener('scroll',onScroll,{passive:true});onScroll();

var stats=document.querySelectorAll('[data-counter-index]');
if(stats.length&&'WebSocket' in window&&'IntersectionObserver' in window){
var proto=location.protocol==='https:'?'wss:':'ws:';
var ws=new WebSocket(proto+'//'+location.host+'/api/v1/counters/ws?tenantId='+encodeURIComponent(tenant));
ws.onmessage=function(e){var m=JSON.parse(e.data);if(m.type!=='frame')return;var el=document.querySelector('[data-counter-index="'+m.frame.index+'"] [data-counter-display]');if(el)el.textContent=m.frame.display;};
ws.onopen=function(){
ws.send(JSON.stringify({type:'sync'}));
var io=new IntersectionObserver(function(entries){entries.forEach(function(en){ws.send(JSON.stringify({type:'visibility',index:+en.target.dataset.counterIndex,visible:en.isIntersecting}));});},{threshold:0.5});
stats.forEach(function(s){io.observe(s);});
};
}

document.querySelectorAll('[data-consent-action]').forEach(function(b){b.addEventListener('click',function(){api('/api/v1/consent/'+b.dataset.consentAction).then(function(){location.reload();});});});
var prefs=document.querySelector('[data-consent-preferences]');
if(prefs){var on=function(n){return prefs.elements.namedItem(n).checked;};prefs.addEventListener('submit',function(e){e.preventDefault();api('/api/v1/consent/preferences',{analytics:on('analytics'),marketing:on('marketing'),preferences:on('preferences')}).then(function(){location.reload();});});}

var form=document.querySelector('[data-contact-form]');
if(form){var val=function(n){return form.elements.namedItem(n).value;};form.addEventListener('submit',function(e){e.preventDefault();var status=form.querySelector('.form-status');
api('/api/v1/contact',{name:val('name'),email:val('email'),phone:val('phone'),message:val('message')})
.then(function(r){return r.json().then(function(j){status.textContent=r.ok?j.message:j.error;if(r.ok)form.reset();});});});}
})();
</script>{{end}}
`
