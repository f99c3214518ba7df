package detector

// registry holds every framework the detector knows how to recognize.
// Ports and build directories follow each framework's documented defaults.
var registry = []definition{
	{
		name:              "Next.js",
		devCommand:        "next dev",
		devPort:           3000,
		buildDirectory:    ".next",
		pollingStrategies: []string{"TCP", "HTTP"},
		detect: func(fs *FSReader) bool {
			return fs.HasAny("next.config.js", "next.config.mjs", "next.config.ts") ||
				hasDependency(fs, "next")
		},
	},
	{
		name:              "Nuxt",
		devCommand:        "nuxt dev",
		devPort:           3000,
		buildDirectory:    "dist",
		pollingStrategies: []string{"TCP", "HTTP"},
		detect: func(fs *FSReader) bool {
			return fs.HasAny("nuxt.config.js", "nuxt.config.ts") || hasDependency(fs, "nuxt")
		},
	},
	{
		name:              "Gatsby",
		devCommand:        "gatsby develop",
		devPort:           8000,
		buildDirectory:    "public",
		env:               map[string]string{"GATSBY_LOGGER": "yurnalist"},
		pollingStrategies: []string{"TCP", "HTTP"},
		detect: func(fs *FSReader) bool {
			return fs.HasAny("gatsby-config.js", "gatsby-config.ts") || hasDependency(fs, "gatsby")
		},
	},
	{
		name:              "Astro",
		devCommand:        "astro dev",
		devPort:           4321,
		buildDirectory:    "dist",
		pollingStrategies: []string{"TCP"},
		detect: func(fs *FSReader) bool {
			return fs.HasAny("astro.config.mjs", "astro.config.js", "astro.config.ts") ||
				hasDependency(fs, "astro")
		},
	},
	{
		name:              "Vite",
		devCommand:        "vite",
		devPort:           5173,
		buildDirectory:    "dist",
		pollingStrategies: []string{"TCP"},
		detect: func(fs *FSReader) bool {
			if hasDependency(fs, "@sveltejs/kit") {
				// SvelteKit wraps vite; let its own entry claim the project
				return false
			}
			return fs.HasAny("vite.config.js", "vite.config.ts", "vite.config.mjs") ||
				hasDependency(fs, "vite")
		},
	},
	{
		name:              "SvelteKit",
		devCommand:        "vite dev",
		devPort:           5173,
		buildDirectory:    "build",
		pollingStrategies: []string{"TCP"},
		detect: func(fs *FSReader) bool {
			return hasDependency(fs, "@sveltejs/kit")
		},
	},
	{
		name:              "Create React App",
		devCommand:        "react-scripts start",
		devPort:           3000,
		buildDirectory:    "build",
		env:               map[string]string{"BROWSER": "none", "FORCE_COLOR": "1"},
		pollingStrategies: []string{"TCP", "HTTP"},
		detect: func(fs *FSReader) bool {
			return hasDependency(fs, "react-scripts")
		},
	},
	{
		name:              "Angular",
		devCommand:        "ng serve",
		devPort:           4200,
		buildDirectory:    "dist",
		pollingStrategies: []string{"TCP", "HTTP"},
		detect: func(fs *FSReader) bool {
			return fs.Has("angular.json") || hasDependency(fs, "@angular/cli")
		},
	},
	{
		name:                  "Remix",
		devCommand:            "remix dev",
		devPort:               3000,
		buildDirectory:        "public/build",
		staticAssetsDirectory: "public",
		pollingStrategies:     []string{"TCP"},
		detect: func(fs *FSReader) bool {
			return fs.HasAny("remix.config.js", "remix.config.ts") ||
				hasDependency(fs, "@remix-run/react")
		},
	},
	{
		name:              "Eleventy",
		devCommand:        "eleventy --serve --watch",
		devPort:           8080,
		buildDirectory:    "_site",
		pollingStrategies: []string{"TCP"},
		detect: func(fs *FSReader) bool {
			return fs.HasAny(".eleventy.js", "eleventy.config.js", "eleventy.config.cjs") ||
				hasDependency(fs, "@11ty/eleventy")
		},
	},
	{
		name:              "Docusaurus",
		devCommand:        "docusaurus start",
		devPort:           3000,
		buildDirectory:    "build",
		pollingStrategies: []string{"TCP", "HTTP"},
		detect: func(fs *FSReader) bool {
			return fs.HasAny("docusaurus.config.js", "docusaurus.config.ts") ||
				hasDependency(fs, "@docusaurus/core")
		},
	},
	{
		name:              "Hugo",
		devCommand:        "hugo server -w",
		devPort:           1313,
		buildDirectory:    "public",
		pollingStrategies: []string{"TCP"},
		detect: func(fs *FSReader) bool {
			return fs.Has("hugo.toml") ||
				(fs.Has("config.toml") && fs.DirExists("archetypes"))
		},
	},
}
