// Package manifest loads nested route trees declared in YAML or JSON.
//
// A manifest is a list of entries, each with a path pattern and optional
// children:
//
//	routes:
//	  - path: /
//	    name: root
//	    view: RootLayout
//	    children:
//	      - path: ""
//	        name: home
//	        view: Home
//	      - path: /users
//	        view: UsersLayout
//	        children:
//	          - path: ""
//	            name: users
//	            view: UsersIndex
//	          - path: /:id:int
//	            name: user
//	            view: UserProfile
//
// An entry whose path is empty is an index route: it matches when its parent
// matched the whole path. Build turns a validated manifest into a
// routing.Routes tree whose data is the *Entry and whose view is the entry's
// view name.
package manifest
