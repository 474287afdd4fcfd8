package cas

import "encoding/xml"

// CAS 2.0 protocol namespace.
const casNamespace = "http://www.yale.edu/tp/cas"

// serviceResponse models the body returned by /serviceValidate.
// Exactly one of Success or Failure is present in a well-formed reply.
type serviceResponse struct {
	XMLName xml.Name               `xml:"http://www.yale.edu/tp/cas serviceResponse"`
	Success *authenticationSuccess `xml:"authenticationSuccess"`
	Failure *authenticationFailure `xml:"authenticationFailure"`
}

type authenticationSuccess struct {
	User       string         `xml:"user"`
	Attributes *casAttributes `xml:"attributes"`
}

// casAttributes captures the optional attribute block. Attribute names
// vary per CAS deployment, so they are collected generically and mapped
// to assertion fields by configuration.
type casAttributes struct {
	Values []casAttribute `xml:",any"`
}

type casAttribute struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type authenticationFailure struct {
	Code    string `xml:"code,attr"`
	Message string `xml:",chardata"`
}
