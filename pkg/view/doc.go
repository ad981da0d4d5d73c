// Package view holds the templ components rendered for route views.
//
// A Registry maps the view names used in the route table to component
// factories. Compose nests a view inside its layouts; layouts render the
// nested component with templ.GetChildren. Unregistered names render a
// Placeholder, so a route table may reference views that have no component yet.
package view
