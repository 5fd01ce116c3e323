package elements

// Document is the page shell: head, navigation, body sections, consent
// banner and footer. The hero anchor is always present so the Home link
// has a target even when the hero section is hidden.
const Document = `
{{define "head"}}<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Meta.Title}}</title>
<meta name="description" content="{{.Meta.Description}}">
{{- with .Meta.Keywords}}<meta name="keywords" content="{{.}}">{{end}}
{{- with .Meta.CanonicalURL}}<link rel="canonical" href="{{.}}"><meta property="og:url" content="{{.}}">{{end}}
<meta property="og:type" content="website">
<meta property="og:title" content="{{.Meta.Title}}">
<meta property="og:description" content="{{.Meta.Description}}">
{{- with .Meta.OGImage}}<meta property="og:image" content="{{.}}">{{end}}
{{- with .Meta.Favicon}}<link rel="icon" href="{{.}}">{{end}}
<script type="application/ld+json">{{jsonLD .StructuredData}}</script>
<style>{{themeCSS .Theme .Organization}}</style>
{{- with .CustomCSS}}<style>{{.}}</style>{{end}}
{{template "analytics" .Analytics}}
</head>{{end}}

{{define "analytics"}}
{{- with .GoogleAnalyticsID}}<script async src="https://www.googletagmanager.com/gtag/js?id={{.}}"></script>
<script>window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}gtag('js',new Date());gtag('config',{{.}});</script>{{end}}
{{- with .TagManagerID}}<script>(function(w,d,s,l,i){w[l]=w[l]||[];w[l].push({'gtm.start':new Date().getTime(),event:'gtm.js'});var f=d.getElementsByTagName(s)[0],j=d.createElement(s);j.async=true;j.src='https://www.googletagmanager.com/gtm.js?id='+i;f.parentNode.insertBefore(j,f);})(window,document,'script','dataLayer',{{.}});</script>{{end}}
{{- with .FacebookPixelID}}<script>!function(f,b,e,v,n,t,s){if(f.fbq)return;n=f.fbq=function(){n.callMethod?n.callMethod.apply(n,arguments):n.queue.push(arguments)};if(!f._fbq)f._fbq=n;n.push=n;n.loaded=!0;n.version='2.0';n.queue=[];t=b.createElement(e);t.async=!0;t.src=v;s=b.getElementsByTagName(e)[0];s.parentNode.insertBefore(t,s)}(window,document,'script','https://connect.facebook.net/en_US/fbevents.js');fbq('init',{{.}});fbq('track','PageView');</script>{{end}}
{{- end}}

{{define "nav"}}<header class="site-header">
<a class="brand" href="#hero">{{with .Organization.LogoURL}}<img src="{{.}}" alt="">{{end}}<span>{{.Organization.Name}}</span></a>
<nav><ul>
{{- range .Navigation}}<li><a href="#{{.TargetID}}" data-nav-target="{{.TargetID}}">{{.Label}}</a></li>{{end}}
</ul></nav>
</header>{{end}}

{{define "consentBanner"}}{{with .Consent}}{{if .ShowBanner}}
<div class="consent-banner consent-{{.Position}}" role="dialog" aria-label="Cookie" data-consent-banner>
<p>Utilizziamo i cookie per migliorare la tua esperienza.
{{- with .PrivacyPolicyURL}} <a href="{{.}}">Privacy Policy</a>{{end}}
{{- with .CookiePolicyURL}} <a href="{{.}}">Cookie Policy</a>{{end}}</p>
{{- if .ShowPreferences}}
<form class="consent-preferences" data-consent-preferences>
<label><input type="checkbox" checked disabled> Necessari</label>
<label><input type="checkbox" name="analytics"{{if .Record.Analytics}} checked{{end}}> Analitici</label>
<label><input type="checkbox" name="marketing"{{if .Record.Marketing}} checked{{end}}> Marketing</label>
<label><input type="checkbox" name="preferences"{{if .Record.Preferences}} checked{{end}}> Preferenze</label>
<button type="submit" class="btn btn-secondary">Salva preferenze</button>
</form>
{{- end}}
<button type="button" class="btn btn-secondary" data-consent-action="reject-all">Rifiuta</button>
<button type="button" class="btn" data-consent-action="accept-all">Accetta tutti</button>
</div>{{end}}{{end}}{{end}}

{{define "footer"}}{{with .Footer}}<footer class="site-footer">
{{- with .Text}}<p>{{.}}</p>{{end}}
{{- with .Address}}<p class="address">{{.}}</p>{{end}}
{{- with .Social}}<ul class="social">{{range $name, $url := .}}<li><a href="{{$url}}" rel="noopener" target="_blank">{{$name}}</a></li>{{end}}</ul>{{end}}
<p>&copy; {{.Year}} {{$.Organization.Name}}{{if .ShowPoweredBy}} · Powered by sitecraft{{end}}</p>
</footer>{{end}}{{end}}

{{define "page"}}<!DOCTYPE html>
<html lang="it">
{{template "head" .}}
<body>
{{template "nav" .}}
<main>
{{- if not (hasSection .Sections "hero")}}<div id="hero" class="hero-anchor"></div>{{end}}
{{- range .Sections}}
{{template "section" (sectionContext $ .)}}
{{- end}}
</main>
{{template "footer" .}}
{{template "consentBanner" .}}
{{template "scripts" .}}
</body>
</html>{{end}}

{{define "maintenance"}}<!DOCTYPE html>
<html lang="it">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="robots" content="noindex">
<title>{{.Organization.Name}}</title>
<style>{{themeCSS .Theme .Organization}}</style>
</head>
<body class="maintenance">
<main class="container">
{{- with .Organization.LogoURL}}<img class="hero-logo" src="{{.}}" alt="">{{end}}
<h1>{{.Organization.Name}}</h1>
<p>{{.Maintenance.Message}}</p>
{{- with .Maintenance.Until}}<p class="until">{{.}}</p>{{end}}
</main>
</body>
</html>{{end}}
`
