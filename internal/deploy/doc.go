// Package deploy uploads a package archive to the managed hosting API.
//
// Upload sends one multipart POST carrying the instance name, tags,
// description and the archive itself, authenticated with a bearer token. The
// response is normalized into a Result whatever the body looks like: a JSON
// body is returned as the API sent it, a text body is wrapped as a "Non-JSON
// error" and an empty body becomes "Unknown error". The transport status is
// always kept next to the business code. Transport failures are returned as
// errors and never folded into a Result.
package deploy
