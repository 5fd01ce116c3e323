package elements

// Sections are the built-in page sections. Each receives the page and the
// section view being rendered.
const Sections = `
{{define "hero"}}{{with .Page}}<div class="hero{{if .Config.Hero.EnableParticles}} hero-particles{{end}}">
{{- with .Organization.LogoURL}}<img class="hero-logo" src="{{.}}" alt="{{$.Page.Organization.Name}}">{{end}}
<h1 class="hero-title">{{or .Config.Hero.TitleOverride .Organization.Name}}</h1>
{{- with or .Config.Hero.Subtitle .Organization.Tagline}}<p class="hero-subtitle">{{.}}</p>{{end}}
<div class="hero-actions">
<a class="btn" href="#contact">Contattaci</a>
{{- if hasSection .Sections "about"}}<a class="btn btn-secondary" href="#about">Scopri di più</a>{{end}}
</div>
</div>{{end}}{{end}}

{{define "about"}}{{with .Page}}<div class="container about">
<h2>Chi Siamo</h2>
{{- with .Config.Description}}<p class="about-text">{{.}}</p>{{end}}
<div class="stats" data-counters>
{{- range $i, $stat := .Stats}}
<div class="stat" data-counter-index="{{$i}}" data-counter-target="{{$stat.Target.Number}}">
<span class="stat-value" data-counter-display>{{$stat.Target.Display 0}}</span>
<span class="stat-label">{{$stat.Label}}</span>
</div>
{{- end}}
</div>
</div>{{end}}{{end}}

{{define "services"}}{{with .Page}}<div class="container services">
<h2>Servizi</h2>
<div class="grid">
{{- range .Services}}
<article class="card service">
<span class="icon icon-{{.Glyph}}" aria-hidden="true"></span>
<h3>{{.Title}}</h3>
{{- with .Description}}<p>{{.}}</p>{{end}}
{{- with .Price}}<p class="price">{{.}}</p>{{end}}
</article>
{{- end}}
</div>
</div>{{end}}{{end}}

{{define "gallery"}}{{with .Page}}<div class="container gallery gallery-{{.Config.Gallery.Layout}}"
 data-lightbox="{{.Config.Gallery.EnableLightbox}}" data-zoom="{{.Config.Gallery.EnableZoom}}">
<h2>Gallery</h2>
<div class="gallery-grid">
{{- range $i, $src := .Config.GalleryImages}}
<figure class="gallery-item"><img src="{{$src}}" loading="lazy" alt="{{$.Page.Organization.Name}} {{$i}}">
{{- if $.Page.Config.Gallery.EnableCaptions}}<figcaption>{{$.Page.Organization.Name}}</figcaption>{{end}}</figure>
{{- end}}
</div>
</div>{{end}}{{end}}

{{define "loyalty"}}{{with .Page}}{{$org := .Organization}}<div class="container loyalty">
<h2>Programma Fedeltà</h2>
<div class="grid">
<div class="card"><h3>{{or $org.PointsName "Punti"}}</h3>
{{- if $org.PointsPerEuro}}<p>{{$org.PointsPerEuro}} {{or $org.PointsName "punti"}} per ogni euro speso</p>{{end}}</div>
{{- if $org.RewardThreshold}}<div class="card"><h3>Premi</h3><p>Un premio ogni {{$org.RewardThreshold}} {{or $org.PointsName "punti"}}</p></div>{{end}}
{{- if $org.WelcomeBonus}}<div class="card"><h3>Benvenuto</h3><p>{{$org.WelcomeBonus}} {{or $org.PointsName "punti"}} in regalo all'iscrizione</p></div>{{end}}
</div>
{{- with .Config.FeaturedRewards}}<ul class="rewards">{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
</div>{{end}}{{end}}

{{define "testimonials"}}{{with .Page}}<div class="container testimonials">
<h2>Recensioni</h2>
<div class="grid">
{{- range .Config.Testimonials}}
<blockquote class="card testimonial">
{{- with .Image}}<img class="avatar" src="{{.}}" alt="" loading="lazy">{{end}}
<p class="stars" aria-label="{{.Rating}} su 5">{{stars .Rating}}</p>
<p>{{.Text}}</p>
<footer>{{.Name}}</footer>
</blockquote>
{{- end}}
</div>
</div>{{end}}{{end}}

{{define "pricing"}}{{with .Page}}<div class="container pricing pricing-{{.Config.Pricing.Layout}}">
<h2>{{.Config.Pricing.Title}}</h2>
{{- with .Config.Pricing.Subtitle}}<p class="subtitle">{{.}}</p>{{end}}
{{- range .Config.PriceCategories}}
<div class="price-category" id="pricing-{{.ID}}">
<h3>{{.Name}}</h3>
{{- with .Description}}<p>{{.}}</p>{{end}}
<ul class="price-items">
{{- range .Items}}
<li class="price-item">
{{- with .Image}}<img src="{{.}}" alt="" loading="lazy">{{end}}
<span class="price-name">{{.Name}}</span>
{{- with .Duration}}<span class="price-duration">{{.}}</span>{{end}}
<span class="price-value">{{.Price}}</span>
{{- with .Description}}<p class="price-description">{{.}}</p>{{end}}
</li>
{{- end}}
</ul>
</div>
{{- end}}
</div>{{end}}{{end}}

{{define "team"}}{{with .Page}}<div class="container team">
<h2>Team</h2>
<div class="grid">
{{- range .Config.Team}}
<article class="card member">
{{- with .Image}}<img src="{{.}}" alt="" loading="lazy">{{end}}
<h3>{{.Name}}</h3>
<p class="role">{{.Role}}</p>
{{- with .Bio}}<p>{{.}}</p>{{end}}
</article>
{{- end}}
</div>
</div>{{end}}{{end}}

{{define "video"}}{{with .Page}}<div class="container video">
<h2>Video</h2>
{{- with .Config.VideoURL}}
<div class="video-frame">
<iframe src="{{embedURL .}}" title="{{$.Page.Organization.Name}}" loading="lazy" allowfullscreen
 allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"></iframe>
</div>
{{- end}}
</div>{{end}}{{end}}

{{define "contact"}}{{with .Page}}{{$org := .Organization}}<div class="container contact">
<h2>Contatti</h2>
<div class="grid">
<div class="contact-details">
{{- with $org.FullAddress}}<p class="address">{{.}}</p>{{end}}
{{- with $org.Phone}}<p><a href="{{telHref .}}">{{.}}</a></p>{{end}}
{{- with $org.Email}}<p><a href="mailto:{{.}}">{{.}}</a></p>{{end}}
{{- with openingHours .Config}}
<table class="hours">
{{- range .}}<tr><th>{{.Day}}</th><td>{{.Hours}}</td></tr>{{end}}
</table>
{{- end}}
</div>
{{- if .Config.ContactForm.Show}}
<form class="contact-form" data-contact-form data-tenant="{{.TenantID}}">
<input name="name" placeholder="Nome" required maxlength="200">
<input name="email" type="email" placeholder="Email" required>
<input name="phone" type="tel" placeholder="Telefono">
<textarea name="message" placeholder="Messaggio" required maxlength="5000"></textarea>
<button class="btn" type="submit">Invia</button>
<p class="form-status" role="status"></p>
</form>
{{- end}}
</div>
{{- if and .Config.ShowMap $org.FullAddress}}
<iframe class="map" src="{{mapURL $org.FullAddress}}" title="Mappa" loading="lazy"></iframe>
{{- end}}
</div>{{end}}{{end}}
`
