// Package prepare assembles the build inputs of an application.
//
// Modules are processed in manifest order followed by the application's own
// override module (<app>/module). Each module may contribute:
//
//   - package.json: its dependencies, devDependencies and theiaPlugins are
//     merged into one descriptor; later modules win on key collisions.
//   - <base>/Dockerfile: a template fragment rendered with the module's
//     parameters and spliced into the base Dockerfile template.
//
// Base templates (package.json.tmpl, Dockerfile.tmpl) are looked up in
// <module-dir>/base and then <module-dir>/base/<app.base>. Templates use
// text/template with the sprig function set.
//
// Missing modules, descriptors and fragments are warnings. Unparsable
// descriptors, template errors and write failures abort with *Error, and no
// partially written outputs are left behind.
package prepare
